package wheel

import (
	"context"
	"fortune_wheel/internal/render"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// RenderPNG draws the wheel at angle, or at its current rotation when angle is nil.
func (s *serv) RenderPNG(ctx context.Context, id uuid.UUID, angle *float64, w io.Writer) error {
	lw, err := s.wheel(ctx, id)
	if err != nil {
		return err
	}
	a := lw.ctrl.Animator().State().Current
	if angle != nil {
		a = *angle
	}
	return s.renderer.PNG(w, render.Frame{
		Config:   lw.cfg,
		Segments: lw.segments,
		Solver:   lw.solver,
		Angle:    a,
	})
}

// ShareQR returns a PNG QR code pointing at the wheel's public URL.
func (s *serv) ShareQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if _, err := s.wheel(ctx, id); err != nil {
		return nil, err
	}
	url := strings.TrimRight(s.cfg.PublicURL(), "/") + "/wheels/" + id.String()
	return qrcode.Encode(url, qrcode.Medium, qrSize)
}
