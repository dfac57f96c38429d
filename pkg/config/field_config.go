package config

import (
	"fmt"

	"github.com/decker502/tiranga/internal/noise"
	"github.com/decker502/tiranga/pkg/curve"
	"github.com/decker502/tiranga/pkg/field"
	"github.com/decker502/tiranga/pkg/utils"
)

// 曲线场配置
// 本文件定义了画布、曲线生成、着色、透明度与渲染相关的全部参数。
// 所有字段同时支持 YAML 与 TOML（字段名一致），缺省字段使用默认值。

// 画布默认尺寸（竖屏 1080×1920）
const (
	DefaultCanvasWidth  = 1080
	DefaultCanvasHeight = 1920

	// DefaultTimeScale 帧时间（毫秒）到动画时间 t 的换算系数
	DefaultTimeScale = 0.00032
)

// CanvasConfig 逻辑画布
type CanvasConfig struct {
	Width  int `yaml:"width" toml:"width"`   // 画布宽度（像素）
	Height int `yaml:"height" toml:"height"` // 画布高度（像素）
}

// LinesConfig 线数量与采样配置
type LinesConfig struct {
	LineCount    int     `yaml:"lineCount" toml:"lineCount"`       // 线的数量
	SegmentCount int     `yaml:"segmentCount" toml:"segmentCount"` // 每条线的采样点
	TimeScale    float64 `yaml:"timeScale" toml:"timeScale"`       // t = 毫秒 * TimeScale
	Parallel     bool    `yaml:"parallel" toml:"parallel"`         // 按线并行生成
}

// MotionConfig 线的运动参数
type MotionConfig struct {
	Amplitude       float64 `yaml:"amplitude" toml:"amplitude"`
	AmplitudeStep   float64 `yaml:"amplitudeStep" toml:"amplitudeStep"`
	PhaseStep       float64 `yaml:"phaseStep" toml:"phaseStep"`
	OffsetScale     float64 `yaml:"offsetScale" toml:"offsetScale"`
	JitterScale     float64 `yaml:"jitterScale" toml:"jitterScale"`
	NoiseScaleXBase float64 `yaml:"noiseScaleXBase" toml:"noiseScaleXBase"`
	NoiseScaleXStep float64 `yaml:"noiseScaleXStep" toml:"noiseScaleXStep"`
	NoiseScaleT     float64 `yaml:"noiseScaleT" toml:"noiseScaleT"`
}

// CurveConfig 样条配置
type CurveConfig struct {
	Type    string  `yaml:"type" toml:"type"`       // centripetal / chordal / catmullrom
	Tension float64 `yaml:"tension" toml:"tension"` // 仅 catmullrom 使用
}

// ColorsConfig 三色渐变颜色（#RRGGBB）
type ColorsConfig struct {
	Color1 string `yaml:"color1" toml:"color1"`
	Color2 string `yaml:"color2" toml:"color2"`
	Color3 string `yaml:"color3" toml:"color3"`
}

// OpacityConfig 整线透明度
type OpacityConfig struct {
	Base          float64 `yaml:"base" toml:"base"`
	Oscillation   float64 `yaml:"oscillation" toml:"oscillation"`
	PhaseStep     float64 `yaml:"phaseStep" toml:"phaseStep"`
	MaxDistFactor float64 `yaml:"maxDistFactor" toml:"maxDistFactor"` // maxDist = width * factor
}

// NoiseConfig 噪声源
type NoiseConfig struct {
	Kind string `yaml:"kind" toml:"kind"` // perlin / simplex
	Seed int64  `yaml:"seed" toml:"seed"`
}

// RenderConfig 点精灵渲染
type RenderConfig struct {
	PointSize  float64 `yaml:"pointSize" toml:"pointSize"`   // 点精灵直径（画布像素）
	SpriteSize int     `yaml:"spriteSize" toml:"spriteSize"` // 圆形纹理边长
	AlphaTest  float64 `yaml:"alphaTest" toml:"alphaTest"`   // 纹理覆盖率阈值
	TrailAlpha float64 `yaml:"trailAlpha" toml:"trailAlpha"` // 每帧残影清除强度
	Additive   bool    `yaml:"additive" toml:"additive"`     // 加法混合
}

// WindowConfig 窗口
type WindowConfig struct {
	Scale float64 `yaml:"scale" toml:"scale"` // 窗口相对画布的缩放
	Title string  `yaml:"title" toml:"title"`
}

// FieldConfig 曲线场完整配置
type FieldConfig struct {
	Canvas  CanvasConfig     `yaml:"canvas" toml:"canvas"`
	Field   LinesConfig      `yaml:"field" toml:"field"`
	Motion  MotionConfig     `yaml:"motion" toml:"motion"`
	Curve   CurveConfig      `yaml:"curve" toml:"curve"`
	Colors  ColorsConfig     `yaml:"colors" toml:"colors"`
	Zones   field.BandWidths `yaml:"zones" toml:"zones"`
	Opacity OpacityConfig    `yaml:"opacity" toml:"opacity"`
	Noise   NoiseConfig      `yaml:"noise" toml:"noise"`
	Render  RenderConfig     `yaml:"render" toml:"render"`
	Window  WindowConfig     `yaml:"window" toml:"window"`
}

// DefaultFieldConfig 返回默认配置
func DefaultFieldConfig() *FieldConfig {
	return &FieldConfig{
		Canvas: CanvasConfig{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight},
		Field: LinesConfig{
			LineCount:    30,
			SegmentCount: 100,
			TimeScale:    DefaultTimeScale,
		},
		Motion: MotionConfig{
			Amplitude:       200,
			AmplitudeStep:   23,
			PhaseStep:       0.2,
			OffsetScale:     12,
			JitterScale:     5,
			NoiseScaleXBase: 0.4,
			NoiseScaleXStep: 0.05,
			NoiseScaleT:     0.07,
		},
		Curve: CurveConfig{Type: string(curve.Centripetal), Tension: curve.DefaultTension},
		Colors: ColorsConfig{
			Color1: field.DefaultColor1Hex,
			Color2: field.DefaultColor2Hex,
			Color3: field.DefaultColor3Hex,
		},
		Zones: field.DefaultBandWidths(),
		Opacity: OpacityConfig{
			Base:          0.9,
			Oscillation:   0.35,
			PhaseStep:     0.4,
			MaxDistFactor: 2,
		},
		Noise: NoiseConfig{Kind: string(noise.KindPerlin), Seed: 1},
		Render: RenderConfig{
			PointSize:  3,
			SpriteSize: 64,
			AlphaTest:  0.1,
			TrailAlpha: 0.05,
			Additive:   true,
		},
		Window: WindowConfig{Scale: 0.4, Title: "Tiranga"},
	}
}

// Validate 检查配置
//
// 返回：
//   - []string: 可降级处理的问题（已限幅，仅需记录警告）
//   - error: 无法继续运行的错误
func (c *FieldConfig) Validate() ([]string, error) {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Field.LineCount < 1 {
		return nil, fmt.Errorf("field.lineCount must be >= 1, got %d", c.Field.LineCount)
	}
	if c.Field.SegmentCount < 1 {
		return nil, fmt.Errorf("field.segmentCount must be >= 1, got %d", c.Field.SegmentCount)
	}
	if _, err := curve.ParseKind(c.Curve.Type); err != nil {
		return nil, err
	}
	if _, err := noise.ParseKind(c.Noise.Kind); err != nil {
		return nil, err
	}
	if _, err := field.ParsePalette(c.Colors.Color1, c.Colors.Color2, c.Colors.Color3); err != nil {
		return nil, err
	}

	_, warnings := field.NewZones(c.Zones)

	if c.Field.TimeScale <= 0 {
		warnings = append(warnings, fmt.Sprintf("field.timeScale=%v is not positive, using %v", c.Field.TimeScale, DefaultTimeScale))
		c.Field.TimeScale = DefaultTimeScale
	}
	if c.Opacity.MaxDistFactor <= 0 {
		warnings = append(warnings, fmt.Sprintf("opacity.maxDistFactor=%v is not positive, using 2", c.Opacity.MaxDistFactor))
		c.Opacity.MaxDistFactor = 2
	}
	if c.Render.TrailAlpha < 0 || c.Render.TrailAlpha > 1 {
		warnings = append(warnings, fmt.Sprintf("render.trailAlpha=%v outside [0, 1], clamped", c.Render.TrailAlpha))
		c.Render.TrailAlpha = utils.Clamp01(c.Render.TrailAlpha)
	}
	if c.Render.SpriteSize < 1 {
		warnings = append(warnings, fmt.Sprintf("render.spriteSize=%d is too small, using 64", c.Render.SpriteSize))
		c.Render.SpriteSize = 64
	}
	if c.Window.Scale <= 0 {
		warnings = append(warnings, fmt.Sprintf("window.scale=%v is not positive, using 1", c.Window.Scale))
		c.Window.Scale = 1
	}

	return warnings, nil
}

// GeneratorParams 将配置转换为曲线场生成参数
// 水平范围与最大衰减距离由画布宽度推导
func (c *FieldConfig) GeneratorParams() (field.Params, error) {
	kind, err := curve.ParseKind(c.Curve.Type)
	if err != nil {
		return field.Params{}, err
	}
	palette, err := field.ParsePalette(c.Colors.Color1, c.Colors.Color2, c.Colors.Color3)
	if err != nil {
		return field.Params{}, err
	}
	zones, _ := field.NewZones(c.Zones)

	width := float64(c.Canvas.Width)
	leftX, rightX := utils.HorizontalSpan(width)

	return field.Params{
		LineCount:    c.Field.LineCount,
		SegmentCount: c.Field.SegmentCount,

		LeftX:   leftX,
		RightX:  rightX,
		BaseY:   0,
		MaxDist: width * c.Opacity.MaxDistFactor,

		Amplitude:     c.Motion.Amplitude,
		AmplitudeStep: c.Motion.AmplitudeStep,
		PhaseStep:     c.Motion.PhaseStep,
		OffsetScale:   c.Motion.OffsetScale,
		JitterScale:   c.Motion.JitterScale,

		NoiseScaleXBase: c.Motion.NoiseScaleXBase,
		NoiseScaleXStep: c.Motion.NoiseScaleXStep,
		NoiseScaleT:     c.Motion.NoiseScaleT,

		CurveKind: kind,
		Tension:   c.Curve.Tension,

		Zones:   zones,
		Palette: palette,

		BaseOpacity:  c.Opacity.Base,
		Oscillation:  c.Opacity.Oscillation,
		OscPhaseStep: c.Opacity.PhaseStep,
	}, nil
}

// NewGenerator 按配置创建噪声源与曲线场生成器
func (c *FieldConfig) NewGenerator() (*field.Generator, error) {
	params, err := c.GeneratorParams()
	if err != nil {
		return nil, err
	}
	provider, err := noise.New(c.Noise.Kind, c.Noise.Seed)
	if err != nil {
		return nil, err
	}
	return field.NewGenerator(params, provider)
}

// Viewport 返回画布视口，scale 为输出缩放
func (c *FieldConfig) Viewport(scale float64) utils.Viewport {
	return utils.NewViewport(float64(c.Canvas.Width), float64(c.Canvas.Height), scale)
}

// AnimationTime 将经过的毫秒数换算为动画时间 t
func (c *FieldConfig) AnimationTime(elapsedMs float64) float64 {
	return elapsedMs * c.Field.TimeScale
}

// RightSolidWidth 返回推导出的右侧实色宽度（已限幅）
func (c *FieldConfig) RightSolidWidth() float64 {
	z, _ := field.NewZones(c.Zones)
	return z.RightSolid
}

// Overrides 命令行参数对配置的覆盖，零值字段不覆盖
type Overrides struct {
	Noise    string // 噪声类型
	Seed     int64  // 噪声种子
	Parallel bool   // 按线并行生成
}

// Apply 把覆盖写入 cfg 并重新校验
func (o Overrides) Apply(cfg *FieldConfig) ([]string, error) {
	if o.Noise != "" {
		cfg.Noise.Kind = o.Noise
	}
	if o.Seed != 0 {
		cfg.Noise.Seed = o.Seed
	}
	if o.Parallel {
		cfg.Field.Parallel = true
	}
	return cfg.Validate()
}
