package jobs

import (
	"log"
	"time"

	"booking-engine-server/database"
	"booking-engine-server/models"
)

// ExpirationJob abandons session-owned carts past their 14-day TTL so stale
// anonymous carts do not accumulate.
type ExpirationJob struct {
	stopChan chan bool
}

// NewExpirationJob creates a new expiration job
func NewExpirationJob() *ExpirationJob {
	return &ExpirationJob{
		stopChan: make(chan bool),
	}
}

// Start begins the expiration job
func (j *ExpirationJob) Start() {
	go j.run()
	log.Println("🚀 Cart expiration job started")
}

// Stop stops the expiration job
func (j *ExpirationJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Cart expiration job stopped")
}

// run executes the expiration job
func (j *ExpirationJob) run() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.expireSessionCarts()
		case <-j.stopChan:
			return
		}
	}
}

// expireSessionCarts abandons expired session carts and drops their items and
// gate codes.
func (j *ExpirationJob) expireSessionCarts() {
	var expiredCarts []models.Cart
	err := database.DB.Where("session_token IS NOT NULL AND expires_at <= ? AND status = ?",
		time.Now(), models.CartStatusActive).Find(&expiredCarts).Error
	if err != nil {
		log.Printf("❌ Error checking expired carts: %v", err)
		return
	}

	if len(expiredCarts) == 0 {
		return
	}
	log.Printf("⏰ Found %d expired session carts", len(expiredCarts))

	for _, cart := range expiredCarts {
		j.expireCart(cart)
	}
}

// expireCart abandons one cart
func (j *ExpirationJob) expireCart(cart models.Cart) {
	var itemIDs []uint
	if err := database.DB.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Pluck("id", &itemIDs).Error; err != nil {
		log.Printf("❌ Failed to list items of cart %d: %v", cart.ID, err)
		return
	}

	if len(itemIDs) > 0 {
		if err := database.DB.Where("cart_item_id IN ?", itemIDs).Delete(&models.GateCode{}).Error; err != nil {
			log.Printf("❌ Failed to drop gate codes of cart %d: %v", cart.ID, err)
			return
		}
		if err := database.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			log.Printf("❌ Failed to drop items of cart %d: %v", cart.ID, err)
			return
		}
	}

	cart.Status = models.CartStatusAbandoned
	if err := database.DB.Save(&cart).Error; err != nil {
		log.Printf("❌ Failed to abandon cart %d: %v", cart.ID, err)
		return
	}

	log.Printf("✅ Cart %d expired successfully", cart.ID)
}
