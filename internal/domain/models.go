package domain

type Property struct {
	ID          string `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Price       int64  `db:"price"` // whole currency units, no cents
	Location    string `db:"location"`
	Bedrooms    int    `db:"bedrooms"`
	Bathrooms   int    `db:"bathrooms"`
	AreaSqFt    int    `db:"area_sq_ft"`
	Type        string `db:"type"`   // VILLA | APARTMENT | PENTHOUSE | ESTATE | COMMERCIAL
	Status      string `db:"status"` // FOR_SALE | FOR_RENT | SOLD
	ImagesJSON  string `db:"images_json"`
	Features    string `db:"features_json"`
	AgentName   string `db:"agent_name"`
	AgentPhoto  string `db:"agent_photo"`
	AgentPhone  string `db:"agent_phone"`
	Featured    bool   `db:"featured"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`
}

type Lead struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Email         string `db:"email"`
	Phone         string `db:"phone"`
	Message       string `db:"message"`
	PropertyID    string `db:"property_id"`
	PropertyTitle string `db:"property_title"`
	Status        string `db:"status"` // NEW | CONTACTED | QUALIFIED | CLOSED | LOST
	Type          string `db:"type"`   // GENERAL_INQUIRY | VIEWING_REQUEST | OFFER
	CreatedAt     string `db:"created_at"`
}

type BlogPost struct {
	ID              string `db:"id"`
	Title           string `db:"title"`
	Slug            string `db:"slug"`
	Content         string `db:"content"` // HTML fragment owned by the admin editor
	Excerpt         string `db:"excerpt"`
	Keyphrase       string `db:"keyphrase"`
	MetaDescription string `db:"meta_description"`
	Categories      string `db:"categories_json"`
	CoverImage      string `db:"cover_image"`
	Status          string `db:"status"` // PUBLISHED | DRAFT
	Author          string `db:"author"`
	CreatedAt       string `db:"created_at"`
	UpdatedAt       string `db:"updated_at"`
}

type Subscriber struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	SubscribedAt string `db:"subscribed_at"`
}

type TeamMember struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"image"`
}

// SiteSettings is a singleton row (id = 1); saves replace the whole record.
type SiteSettings struct {
	ID                   int     `db:"id"`
	ContactEmail         string  `db:"contact_email"`
	ContactPhone         string  `db:"contact_phone"`
	ContactAddress       string  `db:"contact_address"`
	TeamJSON             string  `db:"team_json"`
	DefaultAgentName     string  `db:"default_agent_name"`
	DefaultAgentPhone    string  `db:"default_agent_phone"`
	DefaultAgentImage    string  `db:"default_agent_image"`
	DefaultCommissionPct float64 `db:"default_commission_pct"`
	MinimumPayout        float64 `db:"minimum_payout"`
	CommunityURL         string  `db:"community_url"`
	UpdatedAt            string  `db:"updated_at"`
}
