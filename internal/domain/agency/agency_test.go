package agency

import (
	"strings"
	"testing"

	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAgency(t *testing.T) {
	tests := []struct {
		name        string
		agencyName  string
		email       string
		wantErr     bool
		errContains string
	}{
		{name: "valid", agencyName: "Acme Growth", email: "hello@acme.test"},
		{name: "no email", agencyName: "Acme Growth"},
		{name: "empty name", agencyName: " ", wantErr: true, errContains: "name cannot be empty"},
		{name: "long name", agencyName: strings.Repeat("a", 201), wantErr: true, errContains: "cannot exceed"},
		{name: "bad email", agencyName: "Acme", email: "not-an-email", wantErr: true, errContains: "valid address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAgency(tt.agencyName, tt.email)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.ErrorIs(t, err, shared.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, a.ID)
			assert.True(t, a.WhiteLabel)
			require.Len(t, a.Events(), 1)
			assert.Equal(t, EventTypeAgencyCreated, a.Events()[0].EventType())
			assert.Equal(t, a.ID, a.Events()[0].AgencyID())
		})
	}
}

func TestAgency_SetContact(t *testing.T) {
	a, err := NewAgency("Acme", "")
	require.NoError(t, err)
	version := a.Version

	a.SetContact(" 555-0100 ", "1 Main St", "Springfield", "US")

	assert.Equal(t, "555-0100", a.CompanyPhone)
	assert.Equal(t, "Springfield", a.City)
	assert.Equal(t, version+1, a.Version)
}

func TestNewSubAccount(t *testing.T) {
	agencyID := uuid.New()

	s, err := NewSubAccount(agencyID, "  Corner Store ", "shop@corner.test")
	require.NoError(t, err)

	assert.Equal(t, "Corner Store", s.Name)
	assert.True(t, s.BelongsTo(agencyID))
	assert.False(t, s.BelongsTo(uuid.New()))
	require.Len(t, s.Events(), 1)
	assert.Equal(t, s.ID.String(), s.Events()[0].AggregateID())
}

func TestNewSubAccount_Invalid(t *testing.T) {
	_, err := NewSubAccount(uuid.Nil, "Store", "")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewSubAccount(uuid.New(), "", "")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
