package city

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
)

type fakeCityRepo struct {
	cities []*City
}

func (r *fakeCityRepo) Create(_ context.Context, c *City) (*City, error) {
	clone := *c
	clone.ID = int64(len(r.cities) + 1)
	r.cities = append(r.cities, &clone)
	return &clone, nil
}

func (r *fakeCityRepo) FindByID(_ context.Context, id int64) (*City, error) {
	for _, c := range r.cities {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, ErrCityNotFound
}

func (r *fakeCityRepo) List(context.Context) ([]*City, error) {
	return r.cities, nil
}

func TestService_CreateCity_DefaultCountry(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeCityRepo{}, nil, nil)

	province := " Pichincha "
	created, err := svc.CreateCity(context.Background(), CreateCityInput{Name: " Quito ", Province: &province})
	if err != nil {
		t.Fatalf("CreateCity returned error: %v", err)
	}
	if created.Name != "Quito" || created.Country != DefaultCountry {
		t.Fatalf("unexpected city: %+v", created)
	}
	if created.Province == nil || *created.Province != "Pichincha" {
		t.Fatalf("expected trimmed provincia, got %v", created.Province)
	}

	country := "Perú"
	other, err := svc.CreateCity(context.Background(), CreateCityInput{Name: "Lima", Country: &country})
	if err != nil {
		t.Fatalf("CreateCity returned error: %v", err)
	}
	if other.Country != "Perú" {
		t.Fatalf("expected explicit pais, got %s", other.Country)
	}
}

func TestService_CreateCity_RequiresName(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeCityRepo{}, nil, nil)

	if _, err := svc.CreateCity(context.Background(), CreateCityInput{Name: " "}); !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	postal := strings.Repeat("1", 21)
	_, err := svc.CreateCity(context.Background(), CreateCityInput{Name: "Quito", PostalCode: &postal})
	var fe *apperror.FieldError
	if !errors.As(err, &fe) || fe.Field != "codigo_postal" {
		t.Fatalf("expected field error on codigo_postal, got %v", err)
	}
}

func TestService_GetCity_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeCityRepo{}, nil, nil)

	if _, err := svc.GetCity(context.Background(), 4); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
