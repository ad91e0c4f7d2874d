package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/control-activos/internal/application/dto"
)

// ─── PageRequest ─────────────────────────────────────────────────────────────

func TestDefaultPage(t *testing.T) {
	cases := []struct {
		name       string
		in         dto.PageRequest
		wantLimit  int
		wantOffset int
	}{
		{"vacía", dto.PageRequest{}, dto.DefaultPageLimit, 0},
		{"se respeta", dto.PageRequest{Limit: 5, Offset: 10}, 5, 10},
		{"tope", dto.PageRequest{Limit: 1000}, dto.MaxPageLimit, 0},
		{"negativos", dto.PageRequest{Limit: -3, Offset: -1}, dto.DefaultPageLimit, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in
			p.DefaultPage()
			assert.Equal(t, tc.wantLimit, p.Limit)
			assert.Equal(t, tc.wantOffset, p.Offset)
		})
	}
}

func TestPageResult(t *testing.T) {
	p := dto.PageRequest{Limit: 2, Offset: 4}

	full := p.Result(2)
	assert.Equal(t, dto.PageResponse{Limit: 2, Offset: 4, Count: 2, HasMore: true}, full)

	last := p.Result(1)
	assert.False(t, last.HasMore)
	assert.Equal(t, 1, last.Count)

	assert.False(t, dto.PageRequest{}.Result(0).HasMore)
}
