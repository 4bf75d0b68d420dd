package maths

import (
	"fmt"
	"math"
)

// 浮点精度阈值（谱系数判零的基准）
const Epsilon = 2.220446049250313e-16

// Chebpts 生成区间[a,b]上的n个第二类Chebyshev配点（升序排列）
// 第二类配点包含区间端点，是谱配置法的标准采样网格
func Chebpts(n int, a, b float64) []float64 {
	if n < 1 {
		panic(fmt.Sprintf("chebpts: invalid point count %d", n))
	}
	if !(a < b) {
		panic(fmt.Sprintf("chebpts: invalid interval [%v, %v]", a, b))
	}
	x := make([]float64, n)
	if n == 1 {
		x[0] = (a + b) / 2 // 单点退化为区间中点
		return x
	}
	// x_j = -cos(j*pi/(n-1))，再线性映射到[a,b]
	for j := 0; j < n; j++ {
		t := -math.Cos(float64(j) * math.Pi / float64(n-1))
		x[j] = (a+b)/2 + (b-a)/2*t
	}
	// 端点强制精确（避免cos舍入误差污染边界条件行）
	x[0] = a
	x[n-1] = b
	return x
}

// Chebpts1 生成区间[a,b]上的n个第一类Chebyshev配点（升序，不含端点）
// 降采样行使用第一类配点，保证约束行与算子行不在同一点重合
func Chebpts1(n int, a, b float64) []float64 {
	if n < 1 {
		panic(fmt.Sprintf("chebpts1: invalid point count %d", n))
	}
	if !(a < b) {
		panic(fmt.Sprintf("chebpts1: invalid interval [%v, %v]", a, b))
	}
	x := make([]float64, n)
	for j := 0; j < n; j++ {
		t := -math.Cos((2*float64(j) + 1) * math.Pi / (2 * float64(n)))
		x[j] = (a+b)/2 + (b-a)/2*t
	}
	return x
}

// BaryWeights 第二类Chebyshev配点的重心插值权重
// w_j = (-1)^j * delta_j，端点权重减半（delta=1/2）
func BaryWeights(n int) []float64 {
	if n < 1 {
		panic(fmt.Sprintf("baryweights: invalid point count %d", n))
	}
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for j := 0; j < n; j++ {
		if j%2 == 0 {
			w[j] = 1
		} else {
			w[j] = -1
		}
	}
	w[0] *= 0.5
	w[n-1] *= 0.5
	return w
}
