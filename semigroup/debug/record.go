package debug

import (
	"encoding/json"
	"io"
)

// Record 记录传播过程的细化历史
// 实现 semigroup.Observer，每轮细化追加一行遥测数据
type Record struct {
	Time      []float64 // 时间列
	Dims      [][]int   // 各子区间维度列
	EpsLevel  []float64 // 误差水平列
	DoneCount []int     // 已完成子区间数量列
}

// Observe 记录一轮细化遥测
func (list *Record) Observe(t float64, dims []int, epslevel float64, doneCount int) {
	list.Time = append(list.Time, t)
	list.Dims = append(list.Dims, append([]int{}, dims...))
	list.EpsLevel = append(list.EpsLevel, epslevel)
	list.DoneCount = append(list.DoneCount, doneCount)
}

// Len 返回记录的轮数
func (list *Record) Len() int { return len(list.Time) }

// Render 格式和输出内容
func (list *Record) Render(w io.Writer) error { return json.NewEncoder(w).Encode(list) }
