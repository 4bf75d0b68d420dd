package semigroup

import (
	"fmt"
	"math"

	"github.com/gokulhari/chebfun/fun"
	"github.com/gokulhari/chebfun/linop"
	"github.com/gokulhari/chebfun/maths"
	"gonum.org/v1/gonum/mat"
)

// collocation 第二类Chebyshev配置法离散化器
// 未知量布局为分量优先：第v分量在第i子区间的第p个值位于 v*S + prefix[i] + p
// （S为各子区间维度之和，prefix为维度前缀和）；算子行采用相同布局
type collocation struct {
	op     *linop.Operator
	dom    []float64
	dims   []int
	prefix []int // 子区间维度前缀和
	total  int   // S = Σ dims
}

// NewCollocation 创建配置法离散化器（默认离散化工厂）
// 维度向量被拷贝持有，矩阵装配推迟到 Matrix 调用
func NewCollocation(op *linop.Operator, dims []int) (Discretization, error) {
	dom := op.Domain()
	if len(dims) != len(dom)-1 {
		return nil, fmt.Errorf("维度向量长度(%d)与子区间数量(%d)不匹配", len(dims), len(dom)-1)
	}
	prefix := make([]int, len(dims)+1)
	for i, d := range dims {
		if d < 2 {
			return nil, fmt.Errorf("子区间 %d 的维度必须至少为2，实际为 %d", i, d)
		}
		prefix[i+1] = prefix[i] + d
	}
	return &collocation{
		op:     op,
		dom:    dom,
		dims:   append([]int(nil), dims...),
		prefix: prefix,
		total:  prefix[len(dims)],
	}, nil
}

// Dims 返回各子区间维度的副本
func (c *collocation) Dims() []int { return append([]int(nil), c.dims...) }

// Matrix 装配矩阵模型
// A：各方程在全部配点上的配置行（块结构：微分项不跨子区间耦合）
// B：边界条件行与连续性条件行
// P：降采样行，把第e方程在每个子区间的n行重采样到n-r个第一类配点
// （r为该方程的最高导数阶，为约束行腾出行空间并保持方阵适定）
func (c *collocation) Matrix() (*mat.Dense, *mat.Dense, *mat.Dense, error) {
	m := c.op.NumVars()
	n := m * c.total

	// 降采样行数核算：约束必须恰好补齐被移除的行
	removed := 0
	for eq := 0; eq < m; eq++ {
		r := c.op.MaxOrder(eq)
		for i := range c.dims {
			if c.dims[i] <= r {
				return nil, nil, nil, fmt.Errorf("子区间 %d 的维度 %d 不足以承载 %d 阶方程", i, c.dims[i], r)
			}
			removed += r
		}
	}
	bcs := c.op.BoundaryConditions()
	cont := c.op.ContinuityConditions()
	k := len(bcs) + len(cont)
	if k != removed {
		return nil, nil, nil, fmt.Errorf("约束数量(%d)与降采样移除的行数(%d)不匹配，方程不适定", k, removed)
	}

	// 算子配置矩阵A
	a := mat.NewDense(n, n, nil)
	for i := range c.dims {
		ni := c.dims[i]
		lo, hi := c.dom[i], c.dom[i+1]
		x := maths.Chebpts(ni, lo, hi)
		// 同一子区间上按导数阶缓存微分矩阵
		diffCache := map[int]*mat.Dense{}
		for eq := 0; eq < m; eq++ {
			rowBase := eq*c.total + c.prefix[i]
			for v := 0; v < m; v++ {
				colBase := v*c.total + c.prefix[i]
				for _, term := range c.op.Block(eq, v) {
					d, ok := diffCache[term.Order]
					if !ok {
						d = maths.DiffMat(ni, term.Order, lo, hi)
						diffCache[term.Order] = d
					}
					for r := 0; r < ni; r++ {
						cf := 1.0
						if term.Coeff != nil {
							cf = term.Coeff(x[r])
						}
						if cf == 0 {
							continue
						}
						for cc := 0; cc < ni; cc++ {
							a.Set(rowBase+r, colBase+cc, a.At(rowBase+r, colBase+cc)+cf*d.At(r, cc))
						}
					}
				}
			}
		}
	}

	// 降采样矩阵P
	p := mat.NewDense(n-k, n, nil)
	pRow := 0
	for eq := 0; eq < m; eq++ {
		r := c.op.MaxOrder(eq)
		for i := range c.dims {
			ni := c.dims[i]
			lo, hi := c.dom[i], c.dom[i+1]
			colBase := eq*c.total + c.prefix[i]
			targets := maths.Chebpts1(ni-r, lo, hi)
			bm := maths.BaryMat(targets, maths.Chebpts(ni, lo, hi), maths.BaryWeights(ni))
			for tr := 0; tr < ni-r; tr++ {
				for cc := 0; cc < ni; cc++ {
					p.Set(pRow, colBase+cc, bm.At(tr, cc))
				}
				pRow++
			}
		}
	}

	// 约束行B：先边界条件，后连续性条件（无约束时为nil）
	if k == 0 {
		return a, nil, p, nil
	}
	b := mat.NewDense(k, n, nil)
	for row, cond := range append(append([]linop.Condition(nil), bcs...), cont...) {
		for _, t := range cond.Terms {
			i, err := c.locate(t.Point, t.Side)
			if err != nil {
				return nil, nil, nil, err
			}
			seg := maths.EvalRow(t.Point, t.Order, c.dims[i], c.dom[i], c.dom[i+1])
			colBase := t.Var*c.total + c.prefix[i]
			for cc, v := range seg {
				b.Set(row, colBase+cc, b.At(row, colBase+cc)+t.Coeff*v)
			}
		}
	}
	return a, b, p, nil
}

// locate 确定约束点所属的子区间（断点处按Side取左/右侧）
func (c *collocation) locate(pt float64, side int) (int, error) {
	s := len(c.dims)
	for i := 0; i < s; i++ {
		lo, hi := c.dom[i], c.dom[i+1]
		if pt < lo || pt > hi {
			continue
		}
		if pt == hi && side > 0 && i < s-1 {
			continue // 右极限归属下一子区间
		}
		return i, nil
	}
	return 0, fmt.Errorf("约束点 %v 不在定义域 [%v, %v] 内", pt, c.dom[0], c.dom[s])
}

// ToValues 前向映射：在各子区间配点上采样各分量函数
func (c *collocation) ToValues(funs []*fun.Fun) *mat.VecDense {
	m := c.op.NumVars()
	out := mat.NewVecDense(m*c.total, nil)
	for v := 0; v < m; v++ {
		for i := range c.dims {
			x := maths.Chebpts(c.dims[i], c.dom[i], c.dom[i+1])
			base := v*c.total + c.prefix[i]
			for p, xp := range x {
				out.SetVec(base+p, funs[v].Eval(xp))
			}
		}
	}
	return out
}

// FromValues 反向映射：离散向量切分为[分量][子区间]的数值片段
func (c *collocation) FromValues(vec *mat.VecDense) [][][]float64 {
	m := c.op.NumVars()
	out := make([][][]float64, m)
	for v := 0; v < m; v++ {
		out[v] = make([][]float64, len(c.dims))
		for i := range c.dims {
			base := v*c.total + c.prefix[i]
			piece := make([]float64, c.dims[i])
			for p := range piece {
				piece[p] = vec.AtVec(base + p)
			}
			out[v][i] = piece
		}
	}
	return out
}

// Scale 各分量的归一化常数：跨子区间的最大幅值，零时回退为1
func (c *collocation) Scale(pieces [][][]float64) []float64 {
	scales := make([]float64, len(pieces))
	for v := range pieces {
		s := 0.0
		for _, piece := range pieces[v] {
			for _, val := range piece {
				if a := math.Abs(val); a > s {
					s = a
				}
			}
		}
		if s == 0 {
			s = 1
		}
		scales[v] = s
	}
	return scales
}
