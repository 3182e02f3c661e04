package migrations

import (
	"gorm.io/gorm"
)

// Migration001AddChallengeIndexes adds composite indexes for the hot
// challenge paths: owner-scoped lookups (every read filters by both id
// and user_id) and the settlement compare-and-set.
func Migration001AddChallengeIndexes() Migration {
	return Migration{
		ID:   "001_add_challenge_indexes",
		Name: "Add composite indexes for owner-scoped challenge lookups",
		Up: func(db *gorm.DB) error {
			idx1 := `
				CREATE INDEX IF NOT EXISTS idx_challenges_user_id_id
				ON challenges (user_id, id)
			`
			if err := db.Exec(idx1).Error; err != nil {
				return err
			}

			idx2 := `
				CREATE INDEX IF NOT EXISTS idx_challenges_claimable
				ON challenges (user_id, reward_claimed)
			`
			return db.Exec(idx2).Error
		},
		Down: func(db *gorm.DB) error {
			if err := db.Exec(`DROP INDEX IF EXISTS idx_challenges_claimable`).Error; err != nil {
				return err
			}
			return db.Exec(`DROP INDEX IF EXISTS idx_challenges_user_id_id`).Error
		},
	}
}
