package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Singleton settings row must always exist (idempotent).
	if err := seedSettings(db); err != nil {
		return nil, err
	}
	// Demo inventory if the DB is brand new.
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Properties
CREATE TABLE IF NOT EXISTS properties(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT,
  price INTEGER NOT NULL CHECK (price >= 0),
  location TEXT NOT NULL,
  bedrooms INTEGER NOT NULL DEFAULT 0,
  bathrooms INTEGER NOT NULL DEFAULT 0,
  area_sq_ft INTEGER NOT NULL DEFAULT 0,
  type TEXT NOT NULL CHECK (type IN ('VILLA','APARTMENT','PENTHOUSE','ESTATE','COMMERCIAL')),
  status TEXT NOT NULL CHECK (status IN ('FOR_SALE','FOR_RENT','SOLD')),
  images_json TEXT,
  features_json TEXT,
  agent_name TEXT,
  agent_photo TEXT,
  agent_phone TEXT,
  featured INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_properties_title      ON properties(LOWER(title));
CREATE INDEX IF NOT EXISTS idx_properties_location   ON properties(LOWER(location));
CREATE INDEX IF NOT EXISTS idx_properties_type       ON properties(type);
CREATE INDEX IF NOT EXISTS idx_properties_status     ON properties(status);
CREATE INDEX IF NOT EXISTS idx_properties_created_at ON properties(created_at);

-- Leads (CRM)
CREATE TABLE IF NOT EXISTS leads(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT,
  message TEXT,
  property_id TEXT,
  property_title TEXT,
  status TEXT NOT NULL DEFAULT 'NEW' CHECK (status IN ('NEW','CONTACTED','QUALIFIED','CLOSED','LOST')),
  type TEXT NOT NULL CHECK (type IN ('GENERAL_INQUIRY','VIEWING_REQUEST','OFFER')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_leads_status     ON leads(status);
CREATE INDEX IF NOT EXISTS idx_leads_email      ON leads(LOWER(email));
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);

-- Blog posts
CREATE TABLE IF NOT EXISTS posts(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  slug TEXT,
  content TEXT,
  excerpt TEXT,
  keyphrase TEXT,
  meta_description TEXT,
  categories_json TEXT,
  cover_image TEXT,
  status TEXT NOT NULL DEFAULT 'DRAFT' CHECK (status IN ('PUBLISHED','DRAFT')),
  author TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_posts_slug ON posts(slug) WHERE slug IS NOT NULL AND slug != '';
CREATE INDEX IF NOT EXISTS idx_posts_status ON posts(status);

-- Newsletter subscribers; uniqueness enforced here, not by caller pre-checks.
CREATE TABLE IF NOT EXISTS subscribers(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  subscribed_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_subscribers_email ON subscribers(LOWER(email));

-- Site settings singleton (id = 1)
CREATE TABLE IF NOT EXISTS site_settings(
  id INTEGER PRIMARY KEY CHECK (id = 1),
  contact_email TEXT,
  contact_phone TEXT,
  contact_address TEXT,
  team_json TEXT,
  default_agent_name TEXT,
  default_agent_phone TEXT,
  default_agent_image TEXT,
  default_commission_pct REAL NOT NULL DEFAULT 2.5,
  minimum_payout REAL NOT NULL DEFAULT 500,
  community_url TEXT,
  updated_at TEXT
);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('ADMIN','AGENT')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Referral program
CREATE TABLE IF NOT EXISTS agents(
  user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  referral_code TEXT NOT NULL UNIQUE,
  clicks INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sales(
  id TEXT PRIMARY KEY,
  agent_id TEXT NOT NULL REFERENCES agents(user_id) ON DELETE CASCADE,
  property_id TEXT,
  property_title TEXT,
  sale_amount INTEGER NOT NULL CHECK (sale_amount >= 0),
  commission_pct REAL NOT NULL,
  commission_amount REAL NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_sales_agent ON sales(agent_id);

CREATE TABLE IF NOT EXISTS payouts(
  id TEXT PRIMARY KEY,
  agent_id TEXT NOT NULL REFERENCES agents(user_id) ON DELETE CASCADE,
  amount REAL NOT NULL CHECK (amount > 0),
  status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING','APPROVED','REJECTED')),
  reference TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_payouts_agent ON payouts(agent_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedSettings(db *sqlx.DB) error {
	_, err := db.Exec(`
		INSERT INTO site_settings(id, contact_email, contact_phone, contact_address, team_json,
		  default_agent_name, default_agent_phone, default_agent_image,
		  default_commission_pct, minimum_payout, community_url)
		SELECT 1, 'concierge@lumiere.test', '+1 310 555 0100', '9200 Wilshire Blvd, Beverly Hills, CA', '[]',
		  'Vivienne Laurent', '+1 310 555 0101', '', 2.5, 500, ''
		WHERE NOT EXISTS (SELECT 1 FROM site_settings WHERE id = 1)
	`)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM properties`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo properties/posts")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO properties(id,title,description,price,location,bedrooms,bathrooms,area_sq_ft,type,status,images_json,features_json,agent_name,agent_phone,featured) VALUES
	  ('prop-azure','Villa Azure','Oceanfront villa with infinity pool and private beach access.',8400000,'Malibu, California',6,7,9800,'VILLA','FOR_SALE','["properties/prop-azure/main.jpg"]','["Infinity Pool","Private Beach","Wine Cellar","Home Theater"]','Vivienne Laurent','+1 310 555 0101',1),
	  ('prop-skyline','The Skyline Penthouse','Full-floor penthouse with wraparound terrace above the city.',5200000,'Downtown Los Angeles',4,5,6200,'PENTHOUSE','FOR_SALE','["properties/prop-skyline/main.jpg"]','["Wraparound Terrace","Private Elevator","Smart Home","Gym"]','Vivienne Laurent','+1 310 555 0101',1),
	  ('prop-orchard','Orchard House','Gated estate among mature oaks, guest house and stables.',12750000,'Montecito, California',8,9,14500,'ESTATE','FOR_SALE','["properties/prop-orchard/main.jpg"]','["Guest House","Stables","Tennis Court","Orchard"]','Vivienne Laurent','+1 310 555 0101',0),
	  ('prop-marina','Marina Residence 21B','Furnished two-bedroom with harbor views, available seasonally.',28000,'Marina del Rey, California',2,2,1650,'APARTMENT','FOR_RENT','["properties/prop-marina/main.jpg"]','["Harbor View","Concierge","Valet"]','Vivienne Laurent','+1 310 555 0101',0)`)

	tx.MustExec(`INSERT INTO posts(id,title,slug,content,excerpt,categories_json,status,author) VALUES
	  ('post-welcome','Inside the Spring Portfolio','inside-the-spring-portfolio','<p>Our spring portfolio opens with four signature residences.</p>','Four signature residences open the season.','["Market"]','PUBLISHED','Editorial Desk'),
	  ('post-staging','Why Staging Sells Estates','why-staging-sells-estates','<p>Staged estates close faster and closer to ask.</p>','Staging notes from our listing team.','["Advice"]','DRAFT','Editorial Desk')`)

	return tx.Commit()
}

// SeedAdmin ensures the configured back-office account exists (idempotent;
// safe to run every start).
func SeedAdmin(db *sqlx.DB, email, password string) error {
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO users(id,email,name,password_hash,role)
		VALUES('u-admin',?, 'Back Office', ?, 'ADMIN')
		ON CONFLICT(email) DO NOTHING
	`, email, h)
	return err
}
