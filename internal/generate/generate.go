// Package generate defines the image-generation collaborator. The real
// model's contract (latency, failure modes, sync vs queued) is not settled,
// so the service treats it as a black box behind the Generator interface.
package generate

import "context"

// Generator produces one image from a user photo and an outfit photo.
type Generator interface {
	Generate(ctx context.Context, userPhoto, outfitPhoto []byte) ([]byte, error)
}

// Passthrough echoes the user photo back unchanged. It stands in until a
// real generation backend is wired up; the API key is accepted now so the
// swap does not touch callers.
type Passthrough struct {
	apiKey string
}

func NewPassthrough(apiKey string) *Passthrough {
	return &Passthrough{apiKey: apiKey}
}

func (p *Passthrough) Generate(ctx context.Context, userPhoto, outfitPhoto []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return userPhoto, nil
}
