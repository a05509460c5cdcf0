package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/gaffer-portfolio-backend/models"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm/clause"
)

// Seed is the YAML document accepted by the seed command. Rows carrying an
// id are upserted, rows without one are inserted.
type Seed struct {
	Portfolio *SeedPortfolio `yaml:"portfolio"`
	Projects  []SeedProject  `yaml:"projects"`
	Clients   []SeedClient   `yaml:"clients"`
}

type SeedPortfolio struct {
	Personal *models.PersonalInfo `yaml:"personal"`
	DemoReel *models.DemoReel     `yaml:"demoReel"`
	Services *[]models.Service    `yaml:"services"`
}

type SeedProject struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Client      string     `yaml:"client"`
	Year        string     `yaml:"year"`
	Category    string     `yaml:"category"`
	Description string     `yaml:"description"`
	Image       string     `yaml:"image"`
	Featured    bool       `yaml:"featured"`
	VideoURL    string     `yaml:"videoUrl"`
	Date        *time.Time `yaml:"date"`
	CreatedAt   *time.Time `yaml:"createdAt"`
}

type SeedClient struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Logo    string `yaml:"logo"`
	Website string `yaml:"website"`
	Order   int    `yaml:"order"`
	Active  *bool  `yaml:"active"`
}

type SeedResult struct {
	Portfolio bool
	Projects  int
	Clients   int
}

var ErrEmptySeed = errors.New("seed file has no portfolio, projects or clients")

// LoadSeed decodes a seed document.
func LoadSeed(r io.Reader) (Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return seed, ErrEmptySeed
		}
		return seed, fmt.Errorf("decode seed: %w", err)
	}
	if seed.Portfolio == nil && len(seed.Projects) == 0 && len(seed.Clients) == 0 {
		return seed, ErrEmptySeed
	}
	return seed, nil
}

// ApplySeed writes the seed into the store. Applying the same seed twice
// leaves rows with ids unchanged.
func ApplySeed(ctx context.Context, d Database, seed Seed, now time.Time) (SeedResult, error) {
	var result SeedResult
	validate := validator.New()
	upsert := clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}

	if seed.Portfolio != nil {
		patch := models.PortfolioPatch{
			Personal: seed.Portfolio.Personal,
			DemoReel: seed.Portfolio.DemoReel,
			Services: seed.Portfolio.Services,
		}
		if err := validate.Struct(patch); err != nil {
			return result, fmt.Errorf("portfolio: %w", err)
		}
		if _, err := d.PortfolioRepo().Apply(ctx, patch, now); err != nil {
			return result, fmt.Errorf("portfolio: %w", err)
		}
		result.Portfolio = true
	}

	for i, sp := range seed.Projects {
		create := models.ProjectCreate{
			Title:       sp.Title,
			Client:      sp.Client,
			Year:        sp.Year,
			Category:    sp.Category,
			Description: sp.Description,
			Image:       sp.Image,
			Featured:    sp.Featured,
			VideoURL:    sp.VideoURL,
			Date:        sp.Date,
		}
		if err := validate.Struct(create); err != nil {
			return result, fmt.Errorf("project %d: %w", i, err)
		}
		project := create.NewProject(now)
		project.ID = sp.ID
		project.UpdatedAt = now
		if sp.CreatedAt != nil {
			project.CreatedAt = *sp.CreatedAt
		}
		if err := d.GetDB().WithContext(ctx).Clauses(upsert).Create(&project).Error; err != nil {
			return result, fmt.Errorf("project %d: %w", i, err)
		}
		result.Projects++
	}

	for i, sc := range seed.Clients {
		create := models.ClientCreate{
			Name:    sc.Name,
			Logo:    sc.Logo,
			Website: sc.Website,
			Order:   sc.Order,
			Active:  sc.Active,
		}
		if err := validate.Struct(create); err != nil {
			return result, fmt.Errorf("client %d: %w", i, err)
		}
		client := create.NewClient()
		client.ID = sc.ID
		client.UpdatedAt = now
		if err := d.GetDB().WithContext(ctx).Clauses(upsert).Create(&client).Error; err != nil {
			return result, fmt.Errorf("client %d: %w", i, err)
		}
		result.Clients++
	}

	return result, nil
}
