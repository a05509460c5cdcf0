package database

import (
	"fmt"

	"gorm.io/gorm"
)

type Database struct {
	db            *gorm.DB
	adminRepo     *AdminRepo
	portfolioRepo *PortfolioRepo
	projectRepo   *ProjectRepo
	clientRepo    *ClientRepo
	messageRepo   *MessageRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:            db,
		adminRepo:     NewAdminRepo(db),
		portfolioRepo: NewPortfolioRepo(db),
		projectRepo:   NewProjectRepo(db),
		clientRepo:    NewClientRepo(db),
		messageRepo:   NewMessageRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) AdminRepo() *AdminRepo {
	return d.adminRepo
}

func (d Database) PortfolioRepo() *PortfolioRepo {
	return d.portfolioRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ClientRepo() *ClientRepo {
	return d.clientRepo
}

func (d Database) MessageRepo() *MessageRepo {
	return d.messageRepo
}

// GetDB returns the underlying connection for maintenance tasks.
func (d Database) GetDB() *gorm.DB {
	return d.db
}

// Close releases the connection pool. The Database must not be used afterwards.
func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}
