package semigroup

import (
	"fmt"

	"github.com/gokulhari/chebfun/maths"
	"gonum.org/v1/gonum/mat"
)

// Propagator 离散半群作用对 (E, P)
// E：降维核心指数作用，把全长初值向量压缩到约束零空间坐标并推进时间
// P：回代映射（零空间标准正交基），把降维结果恢复为满足全部约束的全长向量
type Propagator struct {
	E *mat.Dense
	P *mat.Dense
}

// Apply 对离散初值施加半群作用：u(t) = P·(E·u0)
// 结果落在约束零空间内，边界与连续性条件精确成立而非近似成立
func (pr *Propagator) Apply(u0 *mat.VecDense) *mat.VecDense {
	rows, _ := pr.E.Dims()
	reduced := mat.NewVecDense(rows, nil)
	reduced.MulVec(pr.E, u0)
	n, _ := pr.P.Dims()
	out := mat.NewVecDense(n, nil)
	out.MulVec(pr.P, reduced)
	return out
}

// Exponentiate 构造时间t处的传播子
// 约束行经零空间投影消元：V为null(B)的标准正交基，降维生成元
// G = (P·V)^{-1}·(P·A·V)，核心指数 expm(t·G)；t==0 由驱动层短路处理，
// 此处不做特殊分支
func Exponentiate(disc Discretization, t float64) (*Propagator, error) {
	a, b, p, err := disc.Matrix()
	if err != nil {
		return nil, err
	}
	var v *mat.Dense
	if b == nil {
		// 无约束：零空间为全空间
		n, _ := a.Dims()
		v = mat.NewDense(n, n, nil)
		for i := 0; i < n; i++ {
			v.Set(i, i, 1)
		}
	} else {
		var err error
		v, err = maths.NullSpace(b)
		if err != nil {
			return nil, fmt.Errorf("约束零空间计算失败: %w", err)
		}
	}

	// PV（降维方阵）与 W = (PV)^{-1}·P（初值压缩映射）
	var pv mat.Dense
	pv.Mul(p, v)
	var w mat.Dense
	if err := w.Solve(&pv, p); err != nil {
		return nil, fmt.Errorf("降采样方程求解失败（离散模型奇异）: %w", err)
	}

	// 降维生成元 G = (PV)^{-1}·(P·A·V)
	var av, pav mat.Dense
	av.Mul(a, v)
	pav.Mul(p, &av)
	var g mat.Dense
	if err := g.Solve(&pv, &pav); err != nil {
		return nil, fmt.Errorf("降维生成元求解失败（离散模型奇异）: %w", err)
	}

	// 核心指数 expm(t·G)
	rows, cols := g.Dims()
	tg := mat.NewDense(rows, cols, nil)
	tg.Scale(t, &g)
	core, err := maths.Expm(tg)
	if err != nil {
		return nil, fmt.Errorf("矩阵指数计算失败: %w", err)
	}

	_, n := p.Dims()
	e := mat.NewDense(rows, n, nil)
	e.Mul(core, &w)
	return &Propagator{E: e, P: v}, nil
}
