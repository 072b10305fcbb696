package blend

import "testing"

func TestPixelOver(t *testing.T) {
	tests := []struct {
		name string
		dst  [4]byte
		src  [4]byte
		want [4]byte
	}{
		{"opaque source replaces", [4]byte{10, 20, 30, 255}, [4]byte{200, 0, 0, 255}, [4]byte{200, 0, 0, 255}},
		{"transparent source keeps", [4]byte{10, 20, 30, 255}, [4]byte{0, 0, 0, 0}, [4]byte{10, 20, 30, 255}},
		{"half over transparent", [4]byte{}, [4]byte{128, 0, 0, 128}, [4]byte{128, 0, 0, 128}},
		{"half over white", [4]byte{255, 255, 255, 255}, [4]byte{0, 0, 0, 128}, [4]byte{127, 127, 127, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := tt.dst
			Pixel(OpOver, dst[:], tt.src[0], tt.src[1], tt.src[2], tt.src[3])
			if dst != tt.want {
				t.Errorf("Pixel(over) = %v, want %v", dst, tt.want)
			}
		})
	}
}

func TestPixelDifference(t *testing.T) {
	dst := [4]byte{255, 255, 255, 255}
	Pixel(OpDifference, dst[:], 255, 0, 0, 255)
	if want := [4]byte{0, 255, 255, 255}; dst != want {
		t.Errorf("white difference red = %v, want %v", dst, want)
	}

	dst = [4]byte{0, 0, 0, 255}
	Pixel(OpDifference, dst[:], 0, 0, 255, 255)
	if want := [4]byte{0, 0, 255, 255}; dst != want {
		t.Errorf("black difference blue = %v, want %v", dst, want)
	}
}

func TestCoverage(t *testing.T) {
	dst := [4]byte{}
	Coverage(OpOver, dst[:], 255, 255, 255, 255, 0)
	if dst != ([4]byte{}) {
		t.Errorf("zero coverage changed pixel: %v", dst)
	}
	Coverage(OpOver, dst[:], 255, 255, 255, 255, 255)
	if dst != ([4]byte{255, 255, 255, 255}) {
		t.Errorf("full coverage = %v", dst)
	}
}

func TestMulDiv255(t *testing.T) {
	for a := 0; a < 256; a += 17 {
		for b := 0; b < 256; b += 15 {
			want := byte(a * b / 255)
			if got := MulDiv255(byte(a), byte(b)); got != want {
				t.Errorf("MulDiv255(%d, %d) = %d, want %d", a, b, got, want)
			}
		}
	}
}
