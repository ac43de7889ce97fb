package handlers

import (
	"lumiere/internal/concierge"
	"lumiere/internal/config"
	"lumiere/internal/media"
	"lumiere/internal/repos"
	"lumiere/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	PageHandler          *PageHandler
	ListingHandler       *ListingHandler
	BlogHandler          *BlogHandler
	ContactHandler       *ContactHandler
	ChatHandler          *ChatHandler
	AdminHandler         *AdminHandler
	AdminPropertyHandler *AdminPropertyHandler
	AdminPostHandler     *AdminPostHandler
	AdminReferralHandler *AdminReferralHandler
	PortalHandler        *PortalHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, ai *concierge.Concierge, syncer services.ListSyncer) *Deps {
	propRepo := repos.NewPropertyRepo(db)
	leadRepo := repos.NewLeadRepo(db)
	postRepo := repos.NewPostRepo(db)
	subRepo := repos.NewSubscriberRepo(db)
	settingsRepo := repos.NewSettingsRepo(db)
	agentRepo := repos.NewAgentRepo(db)
	userRepo := repos.NewUserRepo(db)

	listingSvc := services.NewListingService(propRepo)
	leadSvc := services.NewLeadService(leadRepo)
	blogSvc := services.NewBlogService(postRepo)
	settingsSvc := services.NewSettingsService(settingsRepo)
	subSvc := services.NewSubscriberService(subRepo, syncer)
	referralSvc := services.NewReferralService(agentRepo, settingsRepo)

	mediaStore := media.NewStore(cfg.MediaDir)

	return &Deps{
		PageHandler:          &PageHandler{Listings: listingSvc, Blog: blogSvc, Settings: settingsSvc},
		ListingHandler:       &ListingHandler{Listings: listingSvc, Leads: leadSvc},
		BlogHandler:          &BlogHandler{Blog: blogSvc},
		ContactHandler:       &ContactHandler{Leads: leadSvc, Settings: settingsSvc, Subs: subSvc},
		ChatHandler:          &ChatHandler{Concierge: ai, Listings: listingSvc},
		AdminHandler:         &AdminHandler{Listings: listingSvc, Leads: leadSvc, Subs: subSvc, Settings: settingsSvc},
		AdminPropertyHandler: &AdminPropertyHandler{Listings: listingSvc, Settings: settingsSvc, Media: mediaStore},
		AdminPostHandler:     &AdminPostHandler{Blog: blogSvc, Media: mediaStore},
		AdminReferralHandler: &AdminReferralHandler{Referrals: referralSvc, Listings: listingSvc, Users: userRepo},
		PortalHandler:        &PortalHandler{Referrals: referralSvc, Settings: settingsSvc},
	}
}
