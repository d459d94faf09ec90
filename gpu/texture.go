package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/renderq/internal/pixel"
	"github.com/gogpu/renderq/resource"
	"github.com/gogpu/wgpu/hal"
)

// Texture is a 2D texture with a default view and a sampler.
// It implements resource.TextureHandle.
type Texture struct {
	device hal.Device

	texture hal.Texture
	view    hal.TextureView
	sampler hal.Sampler

	width, height uint32
	mipLevels     uint32
	format        gputypes.TextureFormat
}

// NewTexture creates a texture from desc and uploads data as mip level 0.
// Data may be empty, leaving the contents undefined. When desc.Mipmapped
// is set, a full mip chain is allocated and the lower levels are
// generated from data.
func NewTexture(ctx *Context, label string, data []byte, desc resource.TextureDesc) (*Texture, error) {
	if ctx == nil || ctx.device == nil {
		return nil, ErrNoDevice
	}
	if desc.Width == 0 || desc.Height == 0 ||
		desc.Width > ctx.maxTextureSize || desc.Height > ctx.maxTextureSize {
		return nil, fmt.Errorf("%w: texture %q is %dx%d (max %d)",
			ErrInvalidDimensions, label, desc.Width, desc.Height, ctx.maxTextureSize)
	}
	if desc.Compression != resource.CompressionNone {
		return nil, fmt.Errorf("%w: texture %q uses %s", ErrUnsupportedCompression, label, desc.Compression)
	}
	format, bpp, ok := textureFormat(desc.Format)
	if !ok {
		return nil, fmt.Errorf("%w: texture %q format %s", ErrUnsupportedFormat, label, desc.Format)
	}
	if desc.Format.IsDepth() && len(data) > 0 {
		return nil, fmt.Errorf("%w: texture %q", ErrDepthUpload, label)
	}

	w, h := int(desc.Width), int(desc.Height)
	var upload []byte
	if len(data) > 0 {
		var err error
		upload, err = toUploadLayout(desc.Format, data, w, h)
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", label, err)
		}
	}

	mips := uint32(1)
	if desc.Mipmapped && !desc.Format.IsDepth() {
		mips = uint32(pixel.MipLevelCount(w, h))
	}
	usage := gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst
	if desc.Format.IsDepth() {
		usage = gputypes.TextureUsageTextureBinding | gputypes.TextureUsageRenderAttachment
	}

	t := &Texture{
		device:    ctx.device,
		width:     desc.Width,
		height:    desc.Height,
		mipLevels: mips,
		format:    format,
	}

	var err error
	t.texture, err = ctx.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: desc.Width, Height: desc.Height, DepthOrArrayLayers: 1},
		MipLevelCount: mips,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", label, err)
	}

	t.view, err = ctx.device.CreateTextureView(t.texture, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: mips,
	})
	if err != nil {
		t.Destroy()
		return nil, fmt.Errorf("create texture view %q: %w", label, err)
	}

	filter := filterMode(desc.Filter)
	t.sampler, err = ctx.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label + "_sampler",
		AddressModeU: addressMode(desc.WrapS),
		AddressModeV: addressMode(desc.WrapT),
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filter,
		MinFilter:    filter,
		MipmapFilter: filter,
	})
	if err != nil {
		t.Destroy()
		return nil, fmt.Errorf("create sampler %q: %w", label, err)
	}

	if upload != nil {
		t.writeLevel(ctx.queue, 0, upload, w, h, bpp)
		if mips > 1 {
			levels, err := pixel.GenerateMipmaps(upload, w, h, bpp, desc.Filter == resource.FilterBilinear)
			if err != nil {
				t.Destroy()
				return nil, fmt.Errorf("texture %q mipmaps: %w", label, err)
			}
			for i, lv := range levels {
				t.writeLevel(ctx.queue, uint32(i+1), lv.Data, lv.Width, lv.Height, bpp)
			}
		}
	}

	slogger().Debug("gpu: texture created",
		"label", label, "width", desc.Width, "height", desc.Height,
		"format", desc.Format.String(), "mips", mips, "bytes", len(upload))
	return t, nil
}

// toUploadLayout validates data against the texture size and converts it
// to the layout of the GPU format. data must hold exactly one base level.
func toUploadLayout(f resource.ImageFormat, data []byte, w, h int) ([]byte, error) {
	want := w * h * f.BytesPerPixel()
	if len(data) != want {
		return nil, fmt.Errorf("%w: %s %dx%d needs %d bytes, got %d", ErrDataSize, f, w, h, want, len(data))
	}
	switch f {
	case resource.ImageFormatRGB888:
		return pixel.RGB888ToRGBA8(data, w, h)
	case resource.ImageFormatRGBA4444:
		return pixel.RGBA4444ToRGBA8(data, w, h)
	case resource.ImageFormatRGB565:
		return pixel.RGB565ToRGBA8(data, w, h)
	default:
		return data, nil
	}
}

func (t *Texture) writeLevel(queue hal.Queue, level uint32, data []byte, w, h, bpp int) {
	queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.texture,
			MipLevel: level,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(w * bpp),
			RowsPerImage: uint32(h),
		},
		&hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
	)
}

func (t *Texture) Width() uint32                  { return t.width }
func (t *Texture) Height() uint32                 { return t.height }
func (t *Texture) MipLevelCount() uint32          { return t.mipLevels }
func (t *Texture) Format() gputypes.TextureFormat { return t.format }
func (t *Texture) View() hal.TextureView          { return t.view }
func (t *Texture) Sampler() hal.Sampler           { return t.sampler }

// Destroy releases the sampler, view and texture.
func (t *Texture) Destroy() {
	if t.device == nil {
		return
	}
	if t.sampler != nil {
		t.device.DestroySampler(t.sampler)
		t.sampler = nil
	}
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		t.device.DestroyTexture(t.texture)
		t.texture = nil
	}
	t.device = nil
}
