package utils

import "testing"

// TestCircleSprite 测试圆形点精灵的覆盖范围
func TestCircleSprite(t *testing.T) {
	mask := CircleSprite(64, 0.1)

	if b := mask.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("sprite bounds = %v, want 64x64", b)
	}

	// 中心完全不透明
	if a := mask.AlphaAt(32, 32).A; a != 255 {
		t.Errorf("center alpha = %d, want 255", a)
	}

	// 四个角在圆外，必须完全透明
	corners := [][2]int{{0, 0}, {63, 0}, {0, 63}, {63, 63}}
	for _, c := range corners {
		if a := mask.AlphaAt(c[0], c[1]).A; a != 0 {
			t.Errorf("corner (%d,%d) alpha = %d, want 0", c[0], c[1], a)
		}
	}

	// 边缘中点在圆内侧
	if a := mask.AlphaAt(32, 2).A; a == 0 {
		t.Error("top edge midpoint should be covered")
	}
}

// TestCircleSpriteAlphaTest 测试 alphaTest 丢弃低覆盖率像素
func TestCircleSpriteAlphaTest(t *testing.T) {
	soft := CircleSprite(16, 0)
	alphaTest := 0.9
	hard := CircleSprite(16, alphaTest)

	for i := range hard.Pix {
		if hard.Pix[i] != 0 && hard.Pix[i] < uint8(alphaTest*255) {
			t.Fatalf("pixel %d alpha %d survived alpha test", i, hard.Pix[i])
		}
		if hard.Pix[i] != 0 && hard.Pix[i] != soft.Pix[i] {
			t.Fatalf("pixel %d changed: %d vs %d", i, hard.Pix[i], soft.Pix[i])
		}
	}
}

// TestCircleSpriteMinimumSize 测试非法尺寸
func TestCircleSpriteMinimumSize(t *testing.T) {
	mask := CircleSprite(0, 0.1)
	if b := mask.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("sprite bounds = %v, want 1x1", b)
	}
}
