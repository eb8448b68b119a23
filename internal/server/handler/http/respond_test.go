package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/atinyakov/AccountKeeper/internal/machinecode"
	"github.com/atinyakov/AccountKeeper/internal/models"
	"github.com/atinyakov/AccountKeeper/internal/remote"
	"github.com/atinyakov/AccountKeeper/internal/repository"
	"github.com/atinyakov/AccountKeeper/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("open: %w", repository.ErrMalformedFile), http.StatusBadRequest},
		{models.ErrEmptyID, http.StatusBadRequest},
		{fmt.Errorf("x: %w", service.ErrDuplicateID), http.StatusBadRequest},
		{errPathRequired, http.StatusBadRequest},
		{fmt.Errorf("x: %w", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", service.ErrNoPath), http.StatusConflict},
		{remote.ErrNotImplemented, http.StatusNotImplemented},
		{machinecode.Backup(""), http.StatusNotImplemented},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
