package pa

import (
	"fmt"
	"time"

	"seven_gym_back_end/internal/cache"
	"seven_gym_back_end/internal/database"

	"github.com/gocql/gocql"
)

// updateMemberTier met à jour le tier d'un membre (flux paiement et remboursement).
// C'est la seconde étape, non transactionnelle, des deux sagas de facturation.
func updateMemberTier(email, tier, startDate, duration, endDate string) error {
	session, err := database.GetMembersSession()
	if err != nil {
		return err
	}

	var memberID gocql.UUID
	if err := session.Query("SELECT member_id FROM members_by_email WHERE email = ?", email).Scan(&memberID); err != nil {
		return fmt.Errorf("membre introuvable pour %s: %v", email, err)
	}

	err = session.Query(`UPDATE members SET tier = ?, tier_start_date = ?, tier_duration = ?, tier_end_date = ?, updated_at = ?
		WHERE member_id = ?`, tier, startDate, duration, endDate, time.Now(), memberID).Exec()
	if err != nil {
		return err
	}

	cache.InvalidateMemberCache(memberID.String())
	return nil
}
