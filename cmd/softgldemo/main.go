// Command softgldemo renders a lit, textured, fogged scene with the softgl
// rasterizer and writes it in one or more image formats.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/softgl"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "demo", "output file name without extension")
		formats = flag.String("formats", "png", "comma-separated output formats ("+strings.Join(softgl.Encoders(), ", ")+")")
		thumb   = flag.Int("thumb", 0, "also write a PNG thumbnail this many pixels wide")
		threads = flag.Int("threads", 0, "raster workers (0 = one per CPU)")
		profile = flag.Bool("profile", false, "print per-command timings")
		verbose = flag.Bool("v", false, "log at debug level")
	)
	flag.Parse()

	if *verbose {
		softgl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	fb, err := softgl.OpenFramebuffer(*width, *height)
	if err != nil {
		log.Fatalf("Failed to open framebuffer: %v", err)
	}
	defer fb.Close()

	opts := []softgl.ContextOption{softgl.WithThreads(*threads)}
	if *profile {
		opts = append(opts, softgl.WithProfiling())
	}
	ctx, err := softgl.NewContext(fb, opts...)
	if err != nil {
		log.Fatalf("Failed to create context: %v", err)
	}
	defer ctx.Close()

	drawScene(ctx, fb.Width(), fb.Height())
	if code := ctx.GetError(); code != softgl.NoError {
		log.Fatalf("Rendering failed: %v", code)
	}

	img := fb.Snapshot()
	if err := writeAll(img, *output, strings.Split(*formats, ","), *thumb); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	if *profile {
		if err := ctx.WriteProfile(os.Stdout); err != nil {
			log.Fatalf("Failed to write profile: %v", err)
		}
	}
	log.Printf("Demo saved to %s.* (%dx%d)\n", *output, fb.Width(), fb.Height())
}

// writeAll encodes img once per format, concurrently, plus an optional
// thumbnail.
func writeAll(img image.Image, base string, formats []string, thumbWidth int) error {
	var g errgroup.Group
	for _, f := range formats {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		g.Go(func() error {
			return writeFile(base+"."+f, img, f)
		})
	}
	if thumbWidth > 0 {
		g.Go(func() error {
			b := img.Bounds()
			h := max(1, b.Dy()*thumbWidth/b.Dx())
			dst := image.NewRGBA(image.Rect(0, 0, thumbWidth, h))
			draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
			return writeFile(base+"_thumb.png", dst, "png")
		})
	}
	return g.Wait()
}

func writeFile(name string, img image.Image, format string) (err error) {
	f, err := os.Create(filepath.Clean(name))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := softgl.EncodeImage(f, img, format); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func drawScene(ctx *softgl.Context, w, h int) {
	ctx.Viewport(0, 0, w, h)
	ctx.ClearColor(0, 0, 0, 1)
	ctx.Clear(softgl.ColorBufferBit | softgl.DepthBufferBit)

	drawBackground(ctx)

	ctx.MatrixMode(softgl.MatrixProjection)
	ctx.LoadIdentity()
	ctx.Perspective(45, float64(w)/float64(h), 1, 50)
	ctx.MatrixMode(softgl.MatrixModelView)
	ctx.LoadIdentity()
	ctx.LookAt(softgl.V3(0, 2, 8), softgl.V3(0, 0, 0), softgl.V3(0, 1, 0))

	ctx.Enable(softgl.CapDepthTest)
	ctx.Enable(softgl.CapCullFace)
	ctx.Enable(softgl.CapFog)
	ctx.FogMode(softgl.FogLinear)
	ctx.FogRange(0.9, 1)
	ctx.FogColor(0.1, 0.15, 0.3, 1)

	ctx.Enable(softgl.CapLighting)
	ctx.Enable(softgl.LightCap(0))
	ctx.Light(0, softgl.LightPosition, softgl.V4(3, 5, 4, 0))
	ctx.Enable(softgl.LightCap(1))
	ctx.Light(1, softgl.LightPosition, softgl.V4(-4, 1, 2, 1))
	ctx.Light(1, softgl.LightDiffuse, softgl.V4(0.3, 0.3, 0.6, 1))
	ctx.Lightf(1, softgl.LightLinearAttenuation, 0.1)
	ctx.Enable(softgl.CapColorMaterial)
	ctx.Material(softgl.FaceFront, softgl.MaterialSpecular, softgl.V4(1, 1, 1, 1))
	ctx.Materialf(softgl.FaceFront, softgl.MaterialShininess, 32)

	tex := ctx.GenTextures(1)[0]
	ctx.BindTexture(tex)
	ctx.TexImage2D(0, 3, 32, 32, 0, softgl.FormatRGB, softgl.UnsignedByte, checker(32, 4))

	// Textured sphere.
	ctx.Enable(softgl.CapTexture2D)
	ctx.PushMatrix()
	ctx.Translate(-1.6, 0, 0)
	ctx.Rotate(-90, 1, 0, 0)
	ctx.Color3f(1, 1, 1)
	ctx.Sphere(1.2, 32, 16)
	ctx.PopMatrix()
	ctx.Disable(softgl.CapTexture2D)

	// Capped cone.
	ctx.PushMatrix()
	ctx.Translate(1.8, -1, 0)
	ctx.Rotate(-90, 1, 0, 0)
	ctx.Color3f(0.9, 0.4, 0.1)
	ctx.Cylinder(1, 0.3, 2, 24, 4)
	ctx.Translate(0, 0, 2)
	ctx.Disk(0, 0.3, 24, 1)
	ctx.PopMatrix()

	// Floor.
	ctx.Normal3f(0, 1, 0)
	ctx.Color3f(0.3, 0.7, 0.3)
	ctx.Begin(softgl.Quads)
	for i := -6; i < 6; i++ {
		for j := -12; j < 4; j++ {
			x0, z0 := float64(i), float64(j)
			ctx.Vertex3f(x0, -1.2, z0+1)
			ctx.Vertex3f(x0+1, -1.2, z0+1)
			ctx.Vertex3f(x0+1, -1.2, z0)
			ctx.Vertex3f(x0, -1.2, z0)
		}
	}
	ctx.End()

	ctx.Disable(softgl.CapLighting)
	ctx.Disable(softgl.CapFog)

	// Wireframe outline of the sphere.
	ctx.PolygonMode(softgl.FaceFrontAndBack, softgl.PolygonLine)
	ctx.Enable(softgl.CapPolygonOffsetLine)
	ctx.PolygonOffset(0, -2)
	ctx.PushMatrix()
	ctx.Translate(-1.6, 0, 0)
	ctx.Rotate(-90, 1, 0, 0)
	ctx.Color3f(0.1, 0.1, 0.1)
	ctx.Sphere(1.2, 16, 8)
	ctx.PopMatrix()
	ctx.PolygonMode(softgl.FaceFrontAndBack, softgl.PolygonFill)

	ctx.Finish()
}

// drawBackground fills the viewport with a vertical gradient behind
// everything else.
func drawBackground(ctx *softgl.Context) {
	ctx.MatrixMode(softgl.MatrixProjection)
	ctx.LoadIdentity()
	ctx.Ortho(-1, 1, -1, 1, -1, 1)
	ctx.MatrixMode(softgl.MatrixModelView)
	ctx.LoadIdentity()

	ctx.DepthMask(false)
	ctx.Begin(softgl.Quads)
	ctx.Color3f(0.1, 0.15, 0.3)
	ctx.Vertex2f(-1, -1)
	ctx.Vertex2f(1, -1)
	ctx.Color3f(0.5, 0.6, 0.8)
	ctx.Vertex2f(1, 1)
	ctx.Vertex2f(-1, 1)
	ctx.End()
	ctx.DepthMask(true)
}

// checker returns an n x n RGB checkerboard with cells of size cell.
func checker(n, cell int) []byte {
	data := make([]byte, n*n*3)
	for y := range n {
		for x := range n {
			o := (y*n + x) * 3
			if (x/cell+y/cell)%2 == 0 {
				data[o], data[o+1], data[o+2] = 0xf0, 0xf0, 0xf0
			} else {
				data[o], data[o+1], data[o+2] = 0xc0, 0x30, 0x30
			}
		}
	}
	return data
}
