package semigroup

import (
	"math"
	"testing"

	"github.com/gokulhari/chebfun/fun"
	"github.com/gokulhari/chebfun/linop"
	"github.com/gokulhari/chebfun/maths"
)

// 无约束零阶算子 u' = -u 的传播子：各配点独立衰减 e^{-t}
func TestExponentiateDecay(t *testing.T) {
	op, err := linop.New([]float64{-1, 1}, 1)
	if err != nil {
		t.Fatalf("创建算子失败: %s", err)
	}
	if err := op.AddTerm(0, 0, linop.Term{Order: 0, Coeff: func(x float64) float64 { return -1 }}); err != nil {
		t.Fatalf("添加项失败: %s", err)
	}
	disc, err := NewCollocation(op, []int{9})
	if err != nil {
		t.Fatalf("创建离散化器失败: %s", err)
	}
	f, err := fun.NewFromFunc(math.Cos, []float64{-1, 1}, 1e-12)
	if err != nil {
		t.Fatalf("构造初值失败: %s", err)
	}
	prop, err := Exponentiate(disc, 0.5)
	if err != nil {
		t.Fatalf("构造传播子失败: %s", err)
	}
	u := prop.Apply(disc.ToValues([]*fun.Fun{f}))
	decay := math.Exp(-0.5)
	x := maths.Chebpts(9, -1, 1)
	for i, xi := range x {
		want := decay * math.Cos(xi)
		if math.Abs(u.AtVec(i)-want) > 1e-10 {
			t.Errorf("传播值不正确: x=%v 期望 %v, 实际 %v", xi, want, u.AtVec(i))
		}
	}
}

// 热传导方程的传播子：边界条件精确成立，解接近解析解
func TestExponentiateHeat(t *testing.T) {
	op := heatOperator(t, []float64{-1, 1})
	disc, err := NewCollocation(op, []int{33})
	if err != nil {
		t.Fatalf("创建离散化器失败: %s", err)
	}
	u0, err := fun.NewFromFunc(func(x float64) float64 { return math.Sin(math.Pi * x) }, []float64{-1, 1}, 1e-12)
	if err != nil {
		t.Fatalf("构造初值失败: %s", err)
	}
	tm := 0.05
	prop, err := Exponentiate(disc, tm)
	if err != nil {
		t.Fatalf("构造传播子失败: %s", err)
	}
	u := prop.Apply(disc.ToValues([]*fun.Fun{u0}))

	// 边界条件由零空间投影精确满足
	if math.Abs(u.AtVec(0)) > 1e-11 || math.Abs(u.AtVec(32)) > 1e-11 {
		t.Errorf("边界条件未精确满足: 左 %v, 右 %v", u.AtVec(0), u.AtVec(32))
	}
	// sin(πx)为本征函数：u(x,t) = exp(-π²t)·sin(πx)
	decay := math.Exp(-math.Pi * math.Pi * tm)
	x := maths.Chebpts(33, -1, 1)
	for i, xi := range x {
		want := decay * math.Sin(math.Pi*xi)
		if math.Abs(u.AtVec(i)-want) > 1e-7 {
			t.Fatalf("传播值不正确: x=%v 期望 %v, 实际 %v", xi, want, u.AtVec(i))
		}
	}
}

// 非有限矩阵指数作为数值失败报告错误
func TestExponentiateNonFinite(t *testing.T) {
	op, err := linop.New([]float64{-1, 1}, 1)
	if err != nil {
		t.Fatalf("创建算子失败: %s", err)
	}
	if err := op.AddTerm(0, 0, linop.Term{Order: 0, Coeff: func(x float64) float64 { return math.NaN() }}); err != nil {
		t.Fatalf("添加项失败: %s", err)
	}
	disc, err := NewCollocation(op, []int{5})
	if err != nil {
		t.Fatalf("创建离散化器失败: %s", err)
	}
	if _, err := Exponentiate(disc, 1); err == nil {
		t.Error("非有限生成元应当报错")
	}
}
