package semigroup

import (
	"math"
	"testing"

	"github.com/gokulhari/chebfun/fun"
	"github.com/gokulhari/chebfun/linop"
	"github.com/gokulhari/chebfun/maths"
)

func heatOperator(t *testing.T, dom []float64) *linop.Operator {
	t.Helper()
	op, err := linop.Diff(dom, 2)
	if err != nil {
		t.Fatalf("创建算子失败: %s", err)
	}
	if err := op.AddBC(linop.Dirichlet(0, dom[0])); err != nil {
		t.Fatalf("添加边界条件失败: %s", err)
	}
	if err := op.AddBC(linop.Dirichlet(0, dom[len(dom)-1])); err != nil {
		t.Fatalf("添加边界条件失败: %s", err)
	}
	return op
}

func TestNewCollocationValidation(t *testing.T) {
	op := heatOperator(t, []float64{-1, 1})
	if _, err := NewCollocation(op, []int{8, 8}); err == nil {
		t.Error("维度向量长度与子区间数量不匹配时应当报错")
	}
	if _, err := NewCollocation(op, []int{1}); err == nil {
		t.Error("维度小于2时应当报错")
	}
}

// 单区间热传导算子的矩阵装配：A为二阶微分矩阵，B为端点取值行，P为降采样矩阵
func TestMatrixHeat(t *testing.T) {
	op := heatOperator(t, []float64{-1, 1})
	disc, err := NewCollocation(op, []int{8})
	if err != nil {
		t.Fatalf("创建离散化器失败: %s", err)
	}
	a, b, p, err := disc.Matrix()
	if err != nil {
		t.Fatalf("矩阵装配失败: %s", err)
	}

	d2 := maths.DiffMat(8, 2, -1, 1)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			if math.Abs(a.At(i, j)-d2.At(i, j)) > 1e-9 {
				t.Fatalf("A(%d,%d)不正确: 期望 %v, 实际 %v", i, j, d2.At(i, j), a.At(i, j))
			}
		}
	}

	// Dirichlet行：配点升序排列，左端点对应首列，右端点对应末列
	br, bc := b.Dims()
	if br != 2 || bc != 8 {
		t.Fatalf("B形状不正确: 期望 2x8, 实际 %dx%d", br, bc)
	}
	for j := 0; j < 8; j++ {
		want0, want1 := 0.0, 0.0
		if j == 0 {
			want0 = 1
		}
		if j == 7 {
			want1 = 1
		}
		if math.Abs(b.At(0, j)-want0) > 1e-12 || math.Abs(b.At(1, j)-want1) > 1e-12 {
			t.Fatalf("边界条件行不正确: 列 %d 为 (%v, %v)", j, b.At(0, j), b.At(1, j))
		}
	}

	pr, pc := p.Dims()
	if pr != 6 || pc != 8 {
		t.Fatalf("P形状不正确: 期望 6x8, 实际 %dx%d", pr, pc)
	}
	// 降采样行对常值向量求值仍为常值（重心插值再现常数）
	for r := 0; r < pr; r++ {
		sum := 0.0
		for c := 0; c < pc; c++ {
			sum += p.At(r, c)
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("降采样行 %d 权重和不正确: 期望 1, 实际 %v", r, sum)
		}
	}
}

// 约束数量与降采样移除行数不平衡时矩阵装配报错
func TestMatrixConstraintMismatch(t *testing.T) {
	op, err := linop.Diff([]float64{-1, 1}, 2)
	if err != nil {
		t.Fatalf("创建算子失败: %s", err)
	}
	// 二阶方程只给一个边界条件
	if err := op.AddBC(linop.Dirichlet(0, -1)); err != nil {
		t.Fatalf("添加边界条件失败: %s", err)
	}
	disc, err := NewCollocation(op, []int{8})
	if err != nil {
		t.Fatalf("创建离散化器失败: %s", err)
	}
	if _, _, _, err := disc.Matrix(); err == nil {
		t.Error("约束数量不平衡时应当报错")
	}
}

// 多区间装配：连续性条件行在断点两侧取值符号相反
func TestMatrixContinuityRows(t *testing.T) {
	op := heatOperator(t, []float64{-1, 0, 1})
	disc, err := NewCollocation(op, []int{6, 6})
	if err != nil {
		t.Fatalf("创建离散化器失败: %s", err)
	}
	_, b, _, err := disc.Matrix()
	if err != nil {
		t.Fatalf("矩阵装配失败: %s", err)
	}
	br, bc := b.Dims()
	if br != 4 || bc != 12 {
		t.Fatalf("B形状不正确: 期望 4x12, 实际 %dx%d", br, bc)
	}
	// 第2行为断点处取值匹配：左区间末点+1，右区间首点-1
	if math.Abs(b.At(2, 5)-1) > 1e-12 || math.Abs(b.At(2, 6)+1) > 1e-12 {
		t.Errorf("连续性取值行不正确: 左 %v, 右 %v", b.At(2, 5), b.At(2, 6))
	}
}

func TestValuesRoundtrip(t *testing.T) {
	op := heatOperator(t, []float64{-1, 0, 1})
	disc, err := NewCollocation(op, []int{9, 13})
	if err != nil {
		t.Fatalf("创建离散化器失败: %s", err)
	}
	f, err := fun.NewFromFunc(func(x float64) float64 { return math.Sin(2 * x) }, []float64{-1, 0, 1}, 1e-12)
	if err != nil {
		t.Fatalf("构造初值失败: %s", err)
	}
	vec := disc.ToValues([]*fun.Fun{f})
	pieces := disc.FromValues(vec)
	if len(pieces) != 1 || len(pieces[0]) != 2 {
		t.Fatalf("片段结构不正确: %d 分量, %d 子区间", len(pieces), len(pieces[0]))
	}
	x := maths.Chebpts(13, 0, 1)
	for p, xp := range x {
		want := math.Sin(2 * xp)
		if math.Abs(pieces[0][1][p]-want) > 1e-10 {
			t.Fatalf("采样值不正确: x=%v 期望 %v, 实际 %v", xp, want, pieces[0][1][p])
		}
	}
}

func TestScale(t *testing.T) {
	op := heatOperator(t, []float64{-1, 1})
	disc, err := NewCollocation(op, []int{5})
	if err != nil {
		t.Fatalf("创建离散化器失败: %s", err)
	}
	scales := disc.Scale([][][]float64{{{0.5, -3, 1, 0, 2}}})
	if scales[0] != 3 {
		t.Errorf("归一化常数不正确: 期望 3, 实际 %v", scales[0])
	}
	scales = disc.Scale([][][]float64{{{0, 0, 0, 0, 0}}})
	if scales[0] != 1 {
		t.Errorf("零数据归一化常数不正确: 期望 1, 实际 %v", scales[0])
	}
}
