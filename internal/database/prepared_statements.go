package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

var (
	// Prepared statements pour les requêtes fréquentes
	stmtGetMemberByEmail    *gocql.Query
	stmtGetMemberByID       *gocql.Query
	stmtInsertMember        *gocql.Query
	stmtInsertMemberByEmail *gocql.Query
	stmtUpdateMemberTier    *gocql.Query

	preparedOnce sync.Once
)

// InitPreparedStatements initialise les prepared statements
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		session, err := GetMembersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements: %v", err)
			return
		}

		// Requête pour récupérer member_id par email
		stmtGetMemberByEmail = session.Query("SELECT member_id FROM members_by_email WHERE email = ?")

		// Requête pour récupérer un membre par ID
		stmtGetMemberByID = session.Query(`SELECT email, password, name, role, provider, tier, tier_start_date, tier_duration, tier_end_date
			FROM members WHERE member_id = ?`)

		// Requête pour insérer un membre
		stmtInsertMember = session.Query(`INSERT INTO members (member_id, email, password, name, role, provider, tier, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

		// Requête pour insérer dans members_by_email
		stmtInsertMemberByEmail = session.Query("INSERT INTO members_by_email (email, member_id) VALUES (?, ?)")

		// Requête de mise à jour du tier (flux paiement et remboursement)
		stmtUpdateMemberTier = session.Query(`UPDATE members SET tier = ?, tier_start_date = ?, tier_duration = ?, tier_end_date = ?, updated_at = ?
			WHERE member_id = ?`)

		log.Println("✅ Prepared statements initialisés")
	})
}

func GetPreparedGetMemberByEmail() *gocql.Query {
	return stmtGetMemberByEmail
}

func GetPreparedGetMemberByID() *gocql.Query {
	return stmtGetMemberByID
}

func GetPreparedInsertMember() *gocql.Query {
	return stmtInsertMember
}

func GetPreparedInsertMemberByEmail() *gocql.Query {
	return stmtInsertMemberByEmail
}

func GetPreparedUpdateMemberTier() *gocql.Query {
	return stmtUpdateMemberTier
}
