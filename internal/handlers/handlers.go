package handlers

import (
	"github.com/01moynul/vrshop-golang/internal/auth"
	"github.com/01moynul/vrshop-golang/internal/store"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Products  store.ProductStore // Usually the Redis-cached catalog
	Comments  store.CommentStore
	Purchases store.PurchaseStore
	Users     store.UserStore
	Captcha   auth.CaptchaVerifier
	Settings  Settings
}

// Settings are the handler-level knobs taken from config.
type Settings struct {
	// VerifyPurchaseTotal makes the server recompute a purchase total from
	// its items and reject a mismatch. Off means the client total is trusted.
	VerifyPurchaseTotal bool
	CookieSecure        bool
	UploadDir           string
	BaseURL             string
	RecaptchaSiteKey    string
}

// New builds Handlers where one Store serves every resource.
func New(s store.Store, products store.ProductStore, captcha auth.CaptchaVerifier, settings Settings) *Handlers {
	if products == nil {
		products = s
	}
	if captcha == nil {
		captcha = auth.NoopVerifier{}
	}
	return &Handlers{
		Products:  products,
		Comments:  s,
		Purchases: s,
		Users:     s,
		Captcha:   captcha,
		Settings:  settings,
	}
}
