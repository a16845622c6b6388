// ABOUTME: Profile photo files: preset avatars and uploaded images keyed by email.
// ABOUTME: Uploads are decoded, downscaled to a thumbnail, and written as PNG.
package profile

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/fuerza/internal/models"
	xdraw "golang.org/x/image/draw"
)

const (
	// ThumbnailWidth is the width stored uploads are scaled down to.
	ThumbnailWidth = 100
	// MaxUploadBytes bounds accepted upload size.
	MaxUploadBytes = 5 << 20
	// MaxUploadPixels bounds the decoded size of an upload (4096x4096).
	MaxUploadPixels = 4096 * 4096

	legacyPresetPrefix = "perfiles/avatar"
)

//go:embed avatars/*.png
var presetFiles embed.FS

// ErrNoPhoto marks a reference with nothing to render.
var ErrNoPhoto = errors.New("no photo")

// ErrInvalidImage marks an upload that is not a PNG or JPEG image.
var ErrInvalidImage = fmt.Errorf("%w: image must be PNG or JPEG", models.ErrInvalid)

// ErrUnknownAvatar marks a preset name that does not exist.
var ErrUnknownAvatar = fmt.Errorf("%w: unknown avatar", models.ErrInvalid)

// UploadKind selects the file suffix for an upload.
type UploadKind string

const (
	// UploadRegistration is a photo chosen while creating the account.
	UploadRegistration UploadKind = "uploaded"
	// UploadEdit is a photo replaced from the profile editor.
	UploadEdit UploadKind = "updated"
)

// Presets lists the built-in avatar names.
var Presets = []string{"avatar1", "avatar2", "avatar3"}

// Choice is what a user picked for their photo: a preset or an upload.
type Choice struct {
	Preset string
	Upload []byte
}

// IsZero reports whether nothing was picked.
func (c Choice) IsZero() bool {
	return c.Preset == "" && len(c.Upload) == 0
}

// Store manages photo files under a single directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the photo directory.
func (s *Store) Dir() string {
	return s.dir
}

// PresetRef maps a preset name ("avatar2", "Avatar 2", or "2") to its path.
func (s *Store) PresetRef(name string) (string, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
	if len(key) == 1 {
		key = "avatar" + key
	}
	for _, p := range Presets {
		if p == key {
			return filepath.Join(s.dir, p+".png"), nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownAvatar, name)
}

// IsPreset reports whether ref points at a built-in avatar, either under the
// photo directory or with the legacy "perfiles/avatar" prefix.
func (s *Store) IsPreset(ref string) bool {
	_, ok := s.presetName(ref)
	return ok
}

func (s *Store) presetName(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	slashed := filepath.ToSlash(ref)
	base := strings.TrimSuffix(filepath.Base(ref), ".png")
	for _, p := range Presets {
		if base != p {
			continue
		}
		if filepath.Clean(ref) == filepath.Join(s.dir, p+".png") || strings.HasPrefix(slashed, legacyPresetPrefix) {
			return p, true
		}
	}
	return "", false
}

// Ref resolves a choice to a stored photo reference, writing the upload to
// disk when one was provided. A zero choice returns "".
func (s *Store) Ref(email string, kind UploadKind, c Choice) (string, error) {
	switch {
	case len(c.Upload) > 0:
		return s.SaveUpload(email, kind, c.Upload)
	case c.Preset != "":
		return s.PresetRef(c.Preset)
	default:
		return "", nil
	}
}

// SaveUpload validates raw image bytes and writes a PNG thumbnail to
// <dir>/<email>_<kind>.png, replacing any previous file.
func (s *Store) SaveUpload(email string, kind UploadKind, raw []byte) (string, error) {
	if len(raw) > MaxUploadBytes {
		return "", fmt.Errorf("%w: upload exceeds %d bytes", models.ErrInvalid, MaxUploadBytes)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > MaxUploadPixels {
		return "", fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidImage, cfg.Width, cfg.Height, MaxUploadPixels)
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if format != "png" && format != "jpeg" {
		return "", ErrInvalidImage
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, Thumbnail(img, ThumbnailWidth)); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return "", fmt.Errorf("create photo directory: %w", err)
	}

	path := filepath.Join(s.dir, fileName(email, kind))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0600); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write photo: %w", err)
	}
	return path, nil
}

// Resolve reports whether ref can be rendered. Preset avatars always can.
// Missing uploads are not an error; they simply render as no photo.
func (s *Store) Resolve(ref string) (string, bool) {
	if s.IsPreset(ref) {
		return ref, true
	}
	if ref == "" {
		return "", false
	}
	info, err := os.Stat(ref)
	if err != nil || info.IsDir() {
		return "", false
	}
	return ref, true
}

// Read returns the PNG bytes for ref. A preset file present on disk wins over
// the embedded copy.
func (s *Store) Read(ref string) ([]byte, error) {
	if name, ok := s.presetName(ref); ok {
		if raw, err := os.ReadFile(ref); err == nil {
			return raw, nil
		}
		return fs.ReadFile(presetFiles, "avatars/"+name+".png")
	}
	if _, ok := s.Resolve(ref); !ok {
		return nil, ErrNoPhoto
	}
	raw, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	return raw, nil
}

// Thumbnail scales img down to width, keeping the aspect ratio. Images that
// are already narrow enough are returned unchanged.
func Thumbnail(img image.Image, width int) image.Image {
	b := img.Bounds()
	if b.Dx() <= width {
		return img
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

func fileName(email string, kind UploadKind) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(strings.TrimSpace(email))
	return fmt.Sprintf("%s_%s.png", safe, kind)
}
