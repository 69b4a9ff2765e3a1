package db

import (
	"context"

	"github.com/otpgate/otpgate/internal/account/entity"
)

// IS NOT DISTINCT FROM makes the compare hold for the never-rotated case,
// where both replay columns are NULL.
const updateReplayStateSQL = `
UPDATE accounts
SET last_code_used = $1, last_code_at = $2, updated_at = $3
WHERE username = $4
  AND last_code_used IS NOT DISTINCT FROM $5
  AND last_code_at IS NOT DISTINCT FROM $6`

// UpdateReplayState applies the replay-state CAS. It reports false when the
// stored (last_code_used, last_code_at) pair no longer matches the previous
// values, meaning a concurrent rotation won.
func (s *DB) UpdateReplayState(ctx context.Context, st entity.ReplayState) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "UpdateReplayState")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, updateReplayStateSQL,
		st.CodeUsed,
		st.CodeAt,
		st.CodeAt,
		st.Username,
		nullableText(st.PrevCodeUsed),
		nullableTime(st.PrevCodeAt),
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}
