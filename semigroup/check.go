package semigroup

import (
	"github.com/gokulhari/chebfun/linop"
	"github.com/gokulhari/chebfun/maths"
)

// ConvergenceResult 收敛判定结果
type ConvergenceResult struct {
	Done     []bool  // 每个子区间的完成标记
	EpsLevel float64 // 误差水平估计（尾部幅值/归一化常数的最大值）
	Cutoff   [][]int // Cutoff[分量][子区间]：有效谱系数长度
}

// Check 收敛（happiness）判定
// 对每个子区间、每个函数型分量检查候选解的尾部谱系数是否衰减到
// tol*scale以下；非函数型分量是代数副产物，不参与判定
// frozen中已完成的子区间保持完成状态（同一时间点求解内维度冻结）
func Check(op *linop.Operator, pieces [][][]float64, scales []float64, p *Prefs, frozen []bool) ConvergenceResult {
	m := len(pieces)
	s := len(pieces[0])
	res := ConvergenceResult{
		Done:   make([]bool, s),
		Cutoff: make([][]int, m),
	}
	for v := range res.Cutoff {
		res.Cutoff[v] = make([]int, s)
	}
	for i := 0; i < s; i++ {
		done := true
		for v := 0; v < m; v++ {
			coeffs := maths.Vals2Coeffs(pieces[v][i])
			thresh := p.Tolerance * scales[v]
			res.Cutoff[v][i] = maths.TailCutoff(coeffs, thresh)
			if !op.IsFun(v) {
				continue
			}
			if lvl := maths.TailMax(coeffs) / scales[v]; lvl > res.EpsLevel {
				res.EpsLevel = lvl
			}
			if !maths.Happy(coeffs, thresh) {
				done = false
			}
		}
		res.Done[i] = done || frozen[i]
	}
	return res
}
