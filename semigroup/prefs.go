package semigroup

import (
	"errors"
	"fmt"
)

// 默认分辨率阶梯（逐级加密的候选离散化维度）
var defaultDimensionValues = []int{17, 33, 65, 129, 257, 513, 725, 1025}

// 默认收敛容差
const defaultTolerance = 1e-10

// Observer 细化过程观察接口（调试记录器实现它以采集细化轨迹）
type Observer interface {
	// Observe 上报一次细化迭代：时间点、各子区间维度、误差水平、已收敛子区间数
	Observe(t float64, dims []int, epslevel float64, doneCount int)
}

// Prefs 传播求解配置
// 零值不可直接使用，通过 DefaultPrefs 获取进程级默认值后按需调整
type Prefs struct {
	DimensionValues []int    // 分辨率阶梯（严格递增）
	Tolerance       float64  // 收敛容差（相对各分量幅值）
	Discretization  Factory  // 离散化器工厂（缺省为配置法）
	MergePieces     bool     // t>0 时尝试合并相邻光滑片段
	Observer        Observer // 细化过程观察器（可为nil）
}

// DefaultPrefs 返回进程级默认配置
func DefaultPrefs() Prefs {
	return Prefs{
		DimensionValues: append([]int(nil), defaultDimensionValues...),
		Tolerance:       defaultTolerance,
		Discretization:  NewCollocation,
		MergePieces:     true,
	}
}

// SetTolerance 配置收敛容差（必须为正）
func (p *Prefs) SetTolerance(tol float64) error {
	if tol <= 0 {
		return errors.New("容差必须大于0")
	}
	p.Tolerance = tol
	return nil
}

// SetDimensionValues 配置分辨率阶梯（非空且严格递增）
func (p *Prefs) SetDimensionValues(dims []int) error {
	if len(dims) == 0 {
		return errors.New("分辨率阶梯不能为空")
	}
	for i, d := range dims {
		if d < 2 {
			return fmt.Errorf("分辨率必须至少为2: dims[%d]=%d", i, d)
		}
		if i > 0 && dims[i] <= dims[i-1] {
			return fmt.Errorf("分辨率阶梯必须严格递增: dims[%d]=%d", i, d)
		}
	}
	p.DimensionValues = append([]int(nil), dims...)
	return nil
}

// validate 校验配置完整性（驱动入口调用）
func (p *Prefs) validate() error {
	if p.Tolerance <= 0 {
		return errors.New("容差必须大于0")
	}
	if len(p.DimensionValues) == 0 {
		return errors.New("分辨率阶梯不能为空")
	}
	if p.Discretization == nil {
		return errors.New("离散化器工厂不能为空")
	}
	return nil
}
