package maths

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Vals2Coeffs 将第二类Chebyshev配点上的函数值转换为Chebyshev级数系数
// 输入values按升序配点排列，输出coeffs[k]对应T_k(x)的系数
// 基于DCT-I实现：v与c互为（缩放后的）第一类离散余弦变换
func Vals2Coeffs(values []float64) []float64 {
	n := len(values)
	if n == 0 {
		panic("vals2coeffs: empty value vector")
	}
	if n == 1 {
		return []float64{values[0]}
	}
	// DCT-I约定配点按降序（x_j = cos(j*pi/(n-1))），需反转输入
	src := make([]float64, n)
	for j := 0; j < n; j++ {
		src[j] = values[n-1-j]
	}
	dst := make([]float64, n)
	fourier.NewDCT(n).Transform(dst, src)
	// 正交关系 DCT-I∘DCT-I = 2(n-1)·I 给出缩放：
	// c_0 = dst_0/(2(n-1))，c_k = dst_k/(n-1)，c_{n-1} = dst_{n-1}/(2(n-1))
	coeffs := make([]float64, n)
	scale := 1 / float64(n-1)
	for k := 0; k < n; k++ {
		coeffs[k] = dst[k] * scale
	}
	coeffs[0] *= 0.5
	coeffs[n-1] *= 0.5
	return coeffs
}

// Coeffs2Vals 将Chebyshev级数系数转换为第二类配点上的函数值（升序）
// Vals2Coeffs的精确逆变换
func Coeffs2Vals(coeffs []float64) []float64 {
	n := len(coeffs)
	if n == 0 {
		panic("coeffs2vals: empty coefficient vector")
	}
	if n == 1 {
		return []float64{coeffs[0]}
	}
	// 内部系数减半后做DCT-I，得到降序配点值
	src := make([]float64, n)
	src[0] = coeffs[0]
	src[n-1] = coeffs[n-1]
	for k := 1; k < n-1; k++ {
		src[k] = coeffs[k] * 0.5
	}
	dst := make([]float64, n)
	fourier.NewDCT(n).Transform(dst, src)
	// 反转为升序
	values := make([]float64, n)
	for j := 0; j < n; j++ {
		values[j] = dst[n-1-j]
	}
	return values
}

// Clenshaw 用Clenshaw递推计算Chebyshev级数在x处的值
// x为标准区间[-1,1]上的坐标，调用方负责区间映射
func Clenshaw(coeffs []float64, x float64) float64 {
	n := len(coeffs)
	if n == 0 {
		panic("clenshaw: empty coefficient vector")
	}
	var b1, b2 float64
	for k := n - 1; k >= 1; k-- {
		b1, b2 = coeffs[k]+2*x*b1-b2, b1
	}
	return coeffs[0] + x*b1 - b2
}

// TailCutoff 计算系数截断长度：保留到最后一个幅值超过阈值的系数
// 返回值最小为1（常数项始终保留），全尾部低于阈值时实现自适应压缩
func TailCutoff(coeffs []float64, thresh float64) int {
	for k := len(coeffs) - 1; k >= 1; k-- {
		if math.Abs(coeffs[k]) > thresh {
			return k + 1
		}
	}
	return 1
}

// TailMax 返回系数尾部块的最大幅值
// 尾部长度取 max(3, n/8)，用于收敛（happiness）判定
func TailMax(coeffs []float64) float64 {
	n := len(coeffs)
	if n == 0 {
		panic("tailmax: empty coefficient vector")
	}
	tail := n / 8
	if tail < 3 {
		tail = 3
	}
	if tail > n {
		tail = n
	}
	maxAbs := 0.0
	for k := n - tail; k < n; k++ {
		if v := math.Abs(coeffs[k]); v > maxAbs {
			maxAbs = v
		}
	}
	return maxAbs
}

// Happy 判定系数尾部是否已衰减到阈值以下（谱收敛判据）
func Happy(coeffs []float64, thresh float64) bool {
	if len(coeffs) < 4 {
		return false // 系数太少不足以判定衰减趋势
	}
	return TailMax(coeffs) <= thresh
}
