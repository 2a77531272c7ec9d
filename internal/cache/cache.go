package cache

import (
	"context"
	"encoding/json"
	"time"

	"seven_gym_back_end/internal/database"
	"seven_gym_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const (
	MemberCacheTTL        = 5 * time.Minute
	TierCatalogCacheTTL   = 10 * time.Minute
	RefundPreviewCacheTTL = 60 * time.Second
)

// GetMemberFromCache récupère un membre depuis Redis ou ScyllaDB
func GetMemberFromCache(memberID string) (*models.Member, error) {
	ctx := context.Background()
	key := "member:" + memberID

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var member models.Member
		if json.Unmarshal([]byte(data), &member) == nil {
			return &member, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	session, err := database.GetMembersSession()
	if err != nil {
		return nil, err
	}

	uid, err := uuid.Parse(memberID)
	if err != nil {
		return nil, err
	}

	var (
		email, name, role, provider, tier          string
		tierStartDate, tierDuration, tierEndDate   string
	)

	err = session.Query(`SELECT email, name, role, provider, tier, tier_start_date, tier_duration, tier_end_date
		FROM members WHERE member_id = ?`, gocql.UUID(uid)).Scan(
		&email, &name, &role, &provider, &tier, &tierStartDate, &tierDuration, &tierEndDate)
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		ID:            memberID,
		Email:         email,
		Name:          name,
		Role:          role,
		Provider:      provider,
		Tier:          tier,
		TierStartDate: tierStartDate,
		TierDuration:  tierDuration,
		TierEndDate:   tierEndDate,
	}

	// 3. Mettre en cache
	jsonData, _ := json.Marshal(member)
	database.Redis.Set(ctx, key, jsonData, MemberCacheTTL)

	return member, nil
}

// InvalidateMemberCache invalide le cache d'un membre (après changement de tier)
func InvalidateMemberCache(memberID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "member:"+memberID)
}

// GetTierCatalogFromCache récupère le catalogue des tiers depuis Redis ou ScyllaDB
func GetTierCatalogFromCache() []models.Tier {
	ctx := context.Background()
	key := "tiers:catalog"

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var tiers []models.Tier
		if json.Unmarshal([]byte(data), &tiers) == nil && len(tiers) > 0 {
			return tiers
		}
	}

	// 2. Récupérer de ScyllaDB
	var tiers []models.Tier
	session, err := database.GetBillingSession()
	if err == nil {
		iter := session.Query("SELECT name, monthly_price, perks, highlighted FROM tiers").Iter()
		var t models.Tier
		for iter.Scan(&t.Name, &t.MonthlyPrice, &t.Perks, &t.Highlighted) {
			tiers = append(tiers, t)
			t = models.Tier{}
		}
		iter.Close()
	}

	// Table vide ou injoignable → catalogue par défaut
	if len(tiers) == 0 {
		tiers = models.DefaultTierCatalog
	}

	// 3. Mettre en cache
	jsonData, _ := json.Marshal(tiers)
	database.Redis.Set(ctx, key, jsonData, TierCatalogCacheTTL)

	return tiers
}

// TierMonthlyPrice retourne le prix mensuel d'un tier depuis le catalogue
func TierMonthlyPrice(tierName string) (float64, bool) {
	for _, t := range GetTierCatalogFromCache() {
		if t.Name == tierName {
			return t.MonthlyPrice, true
		}
	}
	return 0, false
}

// InvalidateTierCatalogCache invalide le catalogue (admin a modifié les prix)
func InvalidateTierCatalogCache() {
	ctx := context.Background()
	database.Redis.Del(ctx, "tiers:catalog")
}
