package softgl

import "log/slog"

// ContextOption configures a Context during creation.
// Use functional options to customize Context behavior.
//
// Example:
//
//	// Defaults: one worker per CPU, lit textures, specular on
//	ctx, err := softgl.NewContext(fb)
//
//	// Deterministic single-threaded rendering with profiling
//	ctx, err := softgl.NewContext(fb, softgl.WithThreads(1), softgl.WithProfiling())
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	threads             int
	parallelRows        int
	textureParallelArea int
	profiling           bool
	litTextures         bool
	specular            bool
	logger              *slog.Logger
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		threads:             0, // GOMAXPROCS
		parallelRows:        DefaultParallelRows,
		textureParallelArea: DefaultTextureParallelArea,
		litTextures:         true,
		specular:            true,
	}
}

// WithThreads sets the number of raster workers.
// 0 uses GOMAXPROCS; 1 disables the worker pool so every pass runs on the
// calling goroutine, which is useful for deterministic benchmarks.
func WithThreads(n int) ContextOption {
	return func(o *contextOptions) {
		if n >= 0 {
			o.threads = n
		}
	}
}

// WithParallelThreshold sets the framebuffer height above which triangles
// are split into row strips and filled by the workers.
func WithParallelThreshold(rows int) ContextOption {
	return func(o *contextOptions) {
		o.parallelRows = rows
	}
}

// WithTextureParallelThreshold sets the image area (width*height) from
// which texture conversion is split across the workers.
func WithTextureParallelThreshold(pixels int) ContextOption {
	return func(o *contextOptions) {
		if pixels > 0 {
			o.textureParallelArea = pixels
		}
	}
}

// WithProfiling records the call count and cumulative time of every
// command. Read the results with Context.Profile or Context.WriteProfile.
func WithProfiling() ContextOption {
	return func(o *contextOptions) {
		o.profiling = true
	}
}

// WithLitTextures controls whether textured fragments are modulated by the
// interpolated vertex colour when the texture environment is Modulate.
// When off, texels are written unmodified.
func WithLitTextures(enabled bool) ContextOption {
	return func(o *contextOptions) {
		o.litTextures = enabled
	}
}

// WithSpecular sets the initial state of the specular lighting term.
// It can be changed later with Context.SetSpecular.
func WithSpecular(enabled bool) ContextOption {
	return func(o *contextOptions) {
		o.specular = enabled
	}
}

// WithLogger installs l as the package logger when the context is created.
// Equivalent to calling SetLogger(l) first.
func WithLogger(l *slog.Logger) ContextOption {
	return func(o *contextOptions) {
		o.logger = l
	}
}

// FramebufferOption configures a Framebuffer during OpenFramebuffer.
type FramebufferOption func(*framebufferOptions)

type framebufferOptions struct {
	mode          PixelMode
	pixels        []uint32
	noCopy        uint32
	noCopyEnabled bool
	serialCopy    bool
}

func defaultFramebufferOptions() framebufferOptions {
	return framebufferOptions{mode: PixelARGB32}
}

// WithPixelMode selects the colour plane layout. Only PixelARGB32 is
// supported; other modes make OpenFramebuffer fail with
// ErrUnsupportedPixelMode.
func WithPixelMode(m PixelMode) FramebufferOption {
	return func(o *framebufferOptions) {
		o.mode = m
	}
}

// WithColorBuffer renders into pixels instead of an allocated colour plane.
// The slice must hold at least width*height entries after the width is
// rounded down to a multiple of 4. The framebuffer does not own it.
func WithColorBuffer(pixels []uint32) FramebufferOption {
	return func(o *framebufferOptions) {
		o.pixels = pixels
	}
}

// WithNoCopyColor makes Framebuffer.CopyTo skip pixels whose RGB equals c,
// leaving the destination untouched there.
func WithNoCopyColor(c uint32) FramebufferOption {
	return func(o *framebufferOptions) {
		o.noCopy = c
		o.noCopyEnabled = true
	}
}

// WithSerialCopy makes Framebuffer.CopyTo run entirely on the caller
// instead of splitting the rows with the copy-out worker.
func WithSerialCopy() FramebufferOption {
	return func(o *framebufferOptions) {
		o.serialCopy = true
	}
}
