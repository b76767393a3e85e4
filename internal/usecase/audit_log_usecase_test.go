package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllAuditLogs(t *testing.T) {
	ctx := context.Background()
	c := newClinic(t, monday)
	admin := c.addAdmin()
	for i := 0; i < 25; i++ {
		c.auditService.LogCreate(ctx, &admin.ID, "test.event", "test", fmt.Sprint(i), nil)
	}
	uc := c.auditLogUsecase()

	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
		wantLen   int
	}{
		{"defaults", 0, 0, 1, 20, 20},
		{"second page", 2, 20, 2, 20, 5},
		{"limit above max falls back", 1, 500, 1, 20, 20},
		{"past the end", 9, 10, 9, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.GetAllAuditLogs(ctx, admin, tt.page, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, resp.Page)
			assert.Equal(t, tt.wantLimit, resp.Limit)
			assert.Len(t, resp.Logs, tt.wantLen)
			assert.Equal(t, int64(25), resp.Total)
		})
	}

	_, err := uc.GetAllAuditLogs(ctx, c.addPatient("ann"), 1, 10)
	assert.ErrorIs(t, err, ErrAdminsOnly)
}

func TestGetAuditLog(t *testing.T) {
	ctx := context.Background()
	c := newClinic(t, monday)
	admin := c.addAdmin()
	c.auditService.LogCreate(ctx, &admin.ID, "test.event", "test", "1", map[string]string{"k": "v"})
	uc := c.auditLogUsecase()

	resp, err := uc.GetAuditLog(ctx, admin, 1)
	require.NoError(t, err)
	assert.Equal(t, "test.event", resp.Action)
	assert.Equal(t, "1", resp.Metadata["entity_id"])

	_, err = uc.GetAuditLog(ctx, admin, 99)
	assert.ErrorIs(t, err, ErrAuditLogNotFound)

	_, err = uc.GetAuditLog(ctx, c.addDoctor("dr-lee"), 1)
	assert.ErrorIs(t, err, ErrAdminsOnly)
}
