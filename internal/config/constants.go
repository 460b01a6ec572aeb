package config

// DefaultDatabasePath is the default path for the application database.
// The filename matches what the original mobile client used, so an existing
// file dropped next to the binary is picked up as-is.
const DefaultDatabasePath = "./bible-app.db"
