package maths

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// NullSpace 计算约束矩阵B（k×n，k<n）零空间的一组标准正交基
// 对B^T做QR分解，完整Q的后n-k列张成null(B)
// k==0时退化为单位矩阵（无约束）
func NullSpace(b *mat.Dense) (*mat.Dense, error) {
	k, n := b.Dims()
	if k >= n {
		return nil, fmt.Errorf("nullspace: constraint rows %d must be fewer than unknowns %d", k, n)
	}
	if k == 0 {
		return eye(n), nil
	}
	bt := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			bt.Set(i, j, b.At(j, i))
		}
	}
	var qr mat.QR
	qr.Factorize(bt)
	var q mat.Dense
	qr.QTo(&q)
	v := mat.NewDense(n, n-k, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n-k; j++ {
			v.Set(i, j, q.At(i, k+j))
		}
	}
	return v, nil
}
