package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Analyses *AnalysisRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Analyses: NewAnalysisRepository(database),
	}
}
