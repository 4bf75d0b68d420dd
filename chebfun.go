package chebfun

import (
	"github.com/gokulhari/chebfun/linop"
	"github.com/gokulhari/chebfun/semigroup"
)

// Result 传播结果
// 算子为单分量且仅请求一个时间点时为 *fun.Fun（收窄为裸函数），
// 其余情况为 *semigroup.BlockVector（每个时间一列）
type Result any

// Expm 计算半群作用 u(t) = exp(t·L)·u0 并按形状收窄结果
// state 接受 *fun.Fun 或 *semigroup.BlockVector；prefs 省略时取默认配置
func Expm(op *linop.Operator, times []float64, state any, prefs ...*semigroup.Prefs) (Result, error) {
	out, err := ExpmBlock(op, times, state, prefs...)
	if err != nil {
		return nil, err
	}
	if op.NumVars() == 1 && len(times) == 1 {
		if f, ok := out.Fun(0); ok {
			return f, nil
		}
	}
	return out, nil
}

// ExpmBlock Expm的形状稳定变体：总是返回逐时间点结果列组成的块向量
func ExpmBlock(op *linop.Operator, times []float64, state any, prefs ...*semigroup.Prefs) (*semigroup.BlockVector, error) {
	var p *semigroup.Prefs
	if len(prefs) > 0 {
		p = prefs[0]
	}
	return semigroup.Propagate(op, times, state, p)
}
