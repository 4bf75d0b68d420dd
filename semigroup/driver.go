package semigroup

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/gokulhari/chebfun/fun"
	"github.com/gokulhari/chebfun/linop"
	"github.com/gokulhari/chebfun/maths"
)

// RefinementState 细化状态：各子区间当前维度与完成标记
// 由驱动层独占持有并逐轮更新；维度在同一时间点内单调不减，
// 跨时间点保留维度作为热启动（已收敛的分辨率是下一个时间点的首选）
type RefinementState struct {
	Dims []int
	Done []bool
}

// Propagate 半群传播：对每个请求时间t计算 u(t) = exp(t·L)·u0
// 返回逐时间点结果列组成的块向量（每个时间一列）
// 初始状态接受 *fun.Fun 或 *BlockVector，在入口处一次性归一化
// 阶梯耗尽未收敛时告警并返回欠分辨的尽力结果，不中断整个调用
func Propagate(op *linop.Operator, times []float64, state any, prefs *Prefs) (*BlockVector, error) {
	p := DefaultPrefs()
	if prefs != nil {
		p = *prefs
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	// ------------------------------ Init：快速失败校验 ------------------------------
	dom := op.Domain()
	for _, d := range dom {
		if math.IsInf(d, 0) || math.IsNaN(d) {
			return nil, errors.New("算子定义域无界，无法离散化")
		}
	}
	if len(times) == 0 {
		return nil, errors.New("时间序列不能为空")
	}
	for i, t := range times {
		if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("时间值必须为非负有限实数: times[%d]=%v", i, t)
		}
		if i > 0 && t < times[i-1] {
			return nil, fmt.Errorf("时间序列必须非降: times[%d]=%v", i, t)
		}
	}
	funs, err := resolveState(op, dom, state)
	if err != nil {
		return nil, err
	}

	// 分辨率下界：输入数据自身的分辨率与方程阶数
	minDim := 4
	for eq := 0; eq < op.NumVars(); eq++ {
		if r := op.MaxOrder(eq) + 2; r > minDim {
			minDim = r
		}
	}
	for _, f := range funs {
		if l := f.MaxPieceLength(); l > minDim {
			minDim = l
		}
	}
	ladder := candidates(&p, minDim)

	s := len(dom) - 1
	ref := RefinementState{Dims: make([]int, s), Done: make([]bool, s)}
	for i := range ref.Dims {
		ref.Dims[i] = ladder[0]
	}

	results := NewBlockVector(len(times))
	for _, t := range times {
		// 每个时间值独立判零：仅当前时间为零才短路返回初值
		if t == 0 {
			results.Append(column(op, copyFuns(funs)))
			continue
		}

		// ------------------------------ 细化循环 ------------------------------
		for i := range ref.Done {
			ref.Done[i] = false
		}
		var pieces [][][]float64
		var res ConvergenceResult
		exhausted := false
		for {
			// Discretize：当前维度下装配矩阵模型
			disc, err := p.Discretization(op, ref.Dims)
			if err != nil {
				return nil, err
			}
			// Propagate：构造传播子并作用于采样后的初值
			prop, err := Exponentiate(disc, t)
			if err != nil {
				return nil, fmt.Errorf("时间 t=%v、维度 %v 处传播失败: %w", t, ref.Dims, err)
			}
			u := prop.Apply(disc.ToValues(funs))
			pieces = disc.FromValues(u)
			// Check：逐子区间收敛判定
			res = Check(op, pieces, disc.Scale(pieces), &p, ref.Done)
			if p.Observer != nil {
				p.Observer.Observe(t, ref.Dims, res.EpsLevel, countDone(res.Done))
			}
			copy(ref.Done, res.Done)
			if allDone(res.Done) {
				break
			}
			// Refine：仅对未完成的子区间推进到阶梯的下一维度
			progressed := false
			for i := range ref.Dims {
				if res.Done[i] {
					continue
				}
				if next, ok := nextDim(ladder, ref.Dims[i]); ok {
					ref.Dims[i] = next
					progressed = true
				}
			}
			if !progressed {
				exhausted = true
				break
			}
		}
		if exhausted {
			log.Printf("警告: 时间 t=%v 处分辨率阶梯耗尽仍未收敛 (epslevel=%.3e)，返回欠分辨结果", t, res.EpsLevel)
		}

		// 从最终离散片段重建各分量的函数表示
		col, err := assemble(op, dom, pieces, res, &p, t)
		if err != nil {
			return nil, err
		}
		results.Append(col)
	}
	return results, nil
}

// resolveState 初始状态归一化：在入口处一次性解析输入类型
// 裸函数包装为单块向量；标量块提升为定义域上的常值函数；其余类型拒绝
func resolveState(op *linop.Operator, dom []float64, state any) ([]*fun.Fun, error) {
	m := op.NumVars()
	switch st := state.(type) {
	case *fun.Fun:
		if m != 1 {
			return nil, fmt.Errorf("算子有 %d 个分量，裸函数初值只适用于单分量", m)
		}
		if err := checkDomain(st, dom); err != nil {
			return nil, err
		}
		return []*fun.Fun{st.Copy()}, nil
	case *BlockVector:
		if st.Len() != m {
			return nil, fmt.Errorf("初值块数量(%d)与算子分量数(%d)不匹配", st.Len(), m)
		}
		funs := make([]*fun.Fun, m)
		for i := 0; i < m; i++ {
			switch b := st.At(i).(type) {
			case FunBlock:
				if err := checkDomain(b.F, dom); err != nil {
					return nil, err
				}
				funs[i] = b.F.Copy()
			case ScalarBlock:
				f, err := fun.Constant(b.V, dom)
				if err != nil {
					return nil, err
				}
				funs[i] = f
			default:
				return nil, fmt.Errorf("不支持的初值块类型: %T", b)
			}
		}
		return funs, nil
	default:
		return nil, fmt.Errorf("不支持的初始状态类型: %T", state)
	}
}

// checkDomain 校验初值函数与算子定义域端点一致
func checkDomain(f *fun.Fun, dom []float64) error {
	fd := f.Domain()
	if fd[0] != dom[0] || fd[len(fd)-1] != dom[len(dom)-1] {
		return fmt.Errorf("初值定义域 [%v, %v] 与算子定义域 [%v, %v] 不一致",
			fd[0], fd[len(fd)-1], dom[0], dom[len(dom)-1])
	}
	return nil
}

// assemble 从最终离散片段重建一个时间点的结果列
// 各分量按报告的截断长度压缩；t>0 且多子区间时按配置尝试合并光滑片段
func assemble(op *linop.Operator, dom []float64, pieces [][][]float64, res ConvergenceResult, p *Prefs, t float64) (Block, error) {
	m := op.NumVars()
	funs := make([]*fun.Fun, m)
	for v := 0; v < m; v++ {
		coeffs := make([][]float64, len(pieces[v]))
		for i, piece := range pieces[v] {
			c := maths.Vals2Coeffs(piece)
			coeffs[i] = c[:res.Cutoff[v][i]]
		}
		f, err := fun.NewFromCoeffs(dom, coeffs)
		if err != nil {
			return nil, fmt.Errorf("结果重建失败: %w", err)
		}
		// t>0 时半群的光滑化作用使解跨断点光滑（策略性假设，非解析检测）
		if p.MergePieces && t > 0 && f.NumPieces() > 1 {
			f.Merge(p.Tolerance)
		}
		funs[v] = f
	}
	return column(op, funs), nil
}

// column 把各分量函数打包为一个结果列：单分量为裸函数块，多分量为嵌套块向量
func column(op *linop.Operator, funs []*fun.Fun) Block {
	if op.NumVars() == 1 {
		return FunBlock{F: funs[0]}
	}
	bv := NewBlockVector(len(funs))
	for _, f := range funs {
		bv.Append(FunBlock{F: f})
	}
	return bv
}

func copyFuns(funs []*fun.Fun) []*fun.Fun {
	out := make([]*fun.Fun, len(funs))
	for i, f := range funs {
		out[i] = f.Copy()
	}
	return out
}

func countDone(done []bool) int {
	n := 0
	for _, d := range done {
		if d {
			n++
		}
	}
	return n
}

func allDone(done []bool) bool {
	for _, d := range done {
		if !d {
			return false
		}
	}
	return true
}
