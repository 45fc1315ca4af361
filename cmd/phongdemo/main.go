// Command phongdemo renders an instanced, lit cube grid with the software
// pipeline and writes the result to a PNG.
package main

import (
	"flag"
	"image/png"
	"log"
	"os"

	"github.com/chewxy/math32"

	"github.com/gogpu/phong"
)

func main() {
	var (
		width  = flag.Int("width", 800, "image width")
		height = flag.Int("height", 600, "image height")
		rows   = flag.Int("rows", 5, "instance grid rows")
		cols   = flag.Int("cols", 5, "instance grid columns")
		output = flag.String("output", "phong.png", "output file")
	)
	flag.Parse()

	fb := phong.NewFramebuffer(*width, *height)
	pipe := phong.NewSoftwarePipeline(fb)

	cam := phong.NewCamera(
		phong.V3(0, 5, 10),
		phong.V3(0, 0, 0),
		float32(*width)/float32(*height),
	)
	pipe.SetCamera(cam)
	pipe.SetLight(&phong.Light{
		Position: phong.V3(3, 4, 3),
		Color:    phong.V3(1, 1, 1),
	})

	pipe.Clear(phong.RGBA{R: 0.05, G: 0.05, B: 0.08, A: 1})
	pipe.DrawBackground()

	node := &phong.Node{
		Mesh:      phong.NewCube(),
		Instances: cubeGrid(*rows, *cols),
		Texture:   checkerTexture(),
	}
	pipe.DrawNode(node)

	pipe.DrawLightMarker(phong.NewSphere(1, 16, 12))

	if err := savePNG(*output, fb); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)
}

// cubeGrid spreads rows*cols cube instances over the xz plane, each
// rotated about its position direction the way the classic instancing
// demos do.
func cubeGrid(rows, cols int) []phong.Instance {
	instances := make([]phong.Instance, 0, rows*cols)
	for z := 0; z < rows; z++ {
		for x := 0; x < cols; x++ {
			pos := phong.V3(
				float32(x)*2.5-float32(cols-1)*1.25,
				0,
				float32(z)*2.5-float32(rows-1)*1.25,
			)

			rot := phong.QuatIdentity()
			if !pos.IsZero() {
				rot = phong.QuatAxisAngle(pos.Normalize(), math32.Pi/4)
			}

			instances = append(instances, phong.Instance{
				Position: pos,
				Rotation: rot,
			})
		}
	}
	return instances
}

// checkerTexture builds an 8x8 two-tone checkerboard.
func checkerTexture() *phong.Texture {
	const n = 8
	tex := phong.NewTexture(n, n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := phong.RGBA{R: 0.9, G: 0.85, B: 0.8, A: 1}
			if (x+y)%2 == 1 {
				c = phong.RGBA{R: 0.3, G: 0.5, B: 0.7, A: 1}
			}
			tex.SetTexel(x, y, c)
		}
	}
	return tex
}

func savePNG(path string, fb *phong.Framebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.Image())
}
