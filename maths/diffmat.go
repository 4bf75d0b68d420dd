package maths

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DiffMat 生成[a,b]区间n点第二类Chebyshev网格上的order阶谱微分矩阵
// 一阶矩阵采用重心插值公式构造，对角线用负和技巧保证行和为零（数值稳定）
// 高阶矩阵由一阶矩阵幂次得到
func DiffMat(n, order int, a, b float64) *mat.Dense {
	if order < 0 {
		panic(fmt.Sprintf("diffmat: invalid derivative order %d", order))
	}
	d := eye(n)
	if order == 0 {
		return d
	}
	if n < 2 {
		panic(fmt.Sprintf("diffmat: need at least 2 points for differentiation, got %d", n))
	}
	x := Chebpts(n, a, b)
	w := BaryWeights(n)
	d1 := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		rowSum := 0.0
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v := (w[j] / w[i]) / (x[i] - x[j])
			d1.Set(i, j, v)
			rowSum += v
		}
		d1.Set(i, i, -rowSum) // 负和技巧：微分算子零化常数函数
	}
	for k := 0; k < order; k++ {
		next := mat.NewDense(n, n, nil)
		next.Mul(d1, d)
		d = next
	}
	return d
}

// BaryMat 生成重心插值重采样矩阵：网格pts（权重w）上的值 → 目标点targets上的值
// 目标点与网格点重合时该行退化为单位行（避免0/0）
func BaryMat(targets, pts, w []float64) *mat.Dense {
	n := len(pts)
	if n == 0 || len(w) != n {
		panic(fmt.Sprintf("barymat: grid/weight size mismatch: %d vs %d", n, len(w)))
	}
	m := len(targets)
	out := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		baryRow(out.RawRowView(i), targets[i], pts, w)
	}
	return out
}

// baryRow 计算单个目标点的重心插值行向量（写入row）
func baryRow(row []float64, x float64, pts, w []float64) {
	n := len(pts)
	sum := 0.0
	for j := 0; j < n; j++ {
		dx := x - pts[j]
		if dx == 0 {
			// 精确命中网格点：插值行为单位行
			for k := range row {
				row[k] = 0
			}
			row[j] = 1
			return
		}
		row[j] = w[j] / dx
		sum += row[j]
	}
	for j := 0; j < n; j++ {
		row[j] /= sum
	}
}

// EvalRow 生成“在x处取order阶导数值”的线性泛函行向量
// 即重心插值行与微分矩阵的乘积，用于边界/连续性约束行的装配
func EvalRow(x float64, order, n int, a, b float64) []float64 {
	pts := Chebpts(n, a, b)
	w := BaryWeights(n)
	row := make([]float64, n)
	baryRow(row, x, pts, w)
	if order == 0 {
		return row
	}
	d := DiffMat(n, order, a, b)
	out := make([]float64, n)
	for j := 0; j < n; j++ {
		s := 0.0
		for k := 0; k < n; k++ {
			s += row[k] * d.At(k, j)
		}
		out[j] = s
	}
	return out
}

// eye 生成n阶单位矩阵
func eye(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}
	return d
}

// IsFiniteMat 检查矩阵所有元素均为有限值（无NaN/Inf）
func IsFiniteMat(a mat.Matrix) bool {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := a.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
