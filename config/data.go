package config

import "github.com/spf13/viper"

// Data data config struct
type Data struct {
	Database *Database
}

// Database holds the MongoDB connection settings.
type Database struct {
	URI  string
	Name string
}

// getData returns the data config.
func getData(v *viper.Viper) *Data {
	return &Data{
		Database: &Database{
			URI:  v.GetString("data.database.uri"),
			Name: v.GetString("data.database.name"),
		},
	}
}
