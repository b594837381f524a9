package dto

import (
	"time"

	"github.com/nvourlidas/CtGym-sub002/internals/features/studios/studios/model"
)

type CreateStudioRequest struct {
	StudioName     string `json:"name" validate:"required,min=2,max=255"`
	StudioSlug     string `json:"slug" validate:"required,min=2,max=100,lowercase"`
	StudioTimezone string `json:"timezone" validate:"required,max=64"`
}

type StudioDTO struct {
	StudioID        string    `json:"studio_id"`
	StudioName      string    `json:"studio_name"`
	StudioSlug      string    `json:"studio_slug"`
	StudioTimezone  string    `json:"studio_timezone"`
	StudioCreatedAt time.Time `json:"studio_created_at"`
}

func ToStudioDTO(m model.StudioModel) StudioDTO {
	return StudioDTO{
		StudioID:        m.StudioID.String(),
		StudioName:      m.StudioName,
		StudioSlug:      m.StudioSlug,
		StudioTimezone:  m.StudioTimezone,
		StudioCreatedAt: m.StudioCreatedAt,
	}
}

func ToStudioDTOs(ms []model.StudioModel) []StudioDTO {
	out := make([]StudioDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToStudioDTO(m))
	}
	return out
}
