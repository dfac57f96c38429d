package systems

import (
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/decker502/tiranga/pkg/field"
)

// FieldSystem 每帧为所有线生成采样结果
//
// 每条线持有自己的缓冲区，帧之间原地覆盖，不做逐帧分配。
// 生成器对不同线没有共享可变状态，parallel 为 true 时按线并行生成。
type FieldSystem struct {
	generator *field.Generator
	lines     []*field.Line
	parallel  bool
	time      float64
}

// NewFieldSystem 创建曲线场系统
//
// 参数：
//   - generator: 曲线场生成器
//   - parallel: 是否按线并行生成
func NewFieldSystem(generator *field.Generator, parallel bool) *FieldSystem {
	s := &FieldSystem{parallel: parallel}
	s.SetGenerator(generator)
	return s
}

// SetGenerator 替换生成器（配置重新加载时调用）
// 线数量或采样点数量变化时重新分配缓冲区
func (s *FieldSystem) SetGenerator(generator *field.Generator) {
	p := generator.Params()

	if len(s.lines) != p.LineCount || (len(s.lines) > 0 && len(s.lines[0].Positions) != p.SegmentCount) {
		s.lines = make([]*field.Line, p.LineCount)
		for i := range s.lines {
			s.lines[i] = field.NewLine(p.SegmentCount)
		}
		log.Printf("[FieldSystem] Allocated %d lines x %d segments", p.LineCount, p.SegmentCount)
	}
	s.generator = generator
}

// SetParallel 切换并行生成
func (s *FieldSystem) SetParallel(parallel bool) {
	s.parallel = parallel
}

// Update 生成时间 t 下的所有线
func (s *FieldSystem) Update(t float64) error {
	s.time = t

	if !s.parallel || len(s.lines) < 2 {
		for i, line := range s.lines {
			s.generator.GenerateInto(i, t, line)
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	gen := s.generator
	for i, line := range s.lines {
		g.Go(func() error {
			gen.GenerateInto(i, t, line)
			return nil
		})
	}
	return g.Wait()
}

// Lines 返回当前帧的所有线（调用方不得持有到下一次 Update 之后）
func (s *FieldSystem) Lines() []*field.Line {
	return s.lines
}

// Time 返回最近一次 Update 的动画时间
func (s *FieldSystem) Time() float64 {
	return s.time
}

// PointCount 返回每帧的采样点总数
func (s *FieldSystem) PointCount() int {
	n := 0
	for _, l := range s.lines {
		n += len(l.Positions)
	}
	return n
}
