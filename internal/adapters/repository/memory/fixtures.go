package memory

import (
	"fmt"
	"time"

	"github.com/ogurasousui/funcionarios-api/internal/core/city"
	"github.com/ogurasousui/funcionarios-api/internal/core/employee"
	"github.com/ogurasousui/funcionarios-api/internal/core/position"
	"github.com/ogurasousui/funcionarios-api/internal/core/project"
	"github.com/ogurasousui/funcionarios-api/internal/core/setting"
)

// DemoEmployeeCount は Seed が投入する funcionario の件数です。
const DemoEmployeeCount = 10

// Seed はデモ用の初期データ (cargo 3 件、proyecto 2 件、ciudad 2 件、funcionario 10 件と設定) で
// Store の内容を置き換えます。assets/seeds/seed.sql と同じ内容です。
func Seed(s *Store, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hired := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	s.positions = []*position.Position{
		{ID: 1, Code: "ADM-001", Name: "Director General", Level: ptr(1), BaseSalary: ptr(5000.0), CreatedAt: now},
		{ID: 2, Code: "ADM-002", Name: "Gerente", Level: ptr(2), BaseSalary: ptr(3500.0), CreatedAt: now},
		{ID: 3, Code: "ADM-003", Name: "Coordinador", Level: ptr(3), BaseSalary: ptr(2500.0), CreatedAt: now},
	}
	s.projects = []*project.Project{
		{ID: 1, Code: "PROY-2024-001", Name: "Digitalización Institucional", Status: project.StatusActive, CreatedAt: now},
		{ID: 2, Code: "PROY-2024-002", Name: "Implementación ERP", Status: project.StatusActive, CreatedAt: now},
	}
	s.cities = []*city.City{
		{ID: 1, Name: "Quito", Province: ptr("Pichincha"), Country: city.DefaultCountry, CreatedAt: now},
		{ID: 2, Name: "Guayaquil", Province: ptr("Guayas"), Country: city.DefaultCountry, CreatedAt: now},
	}

	s.employees = make([]*employee.Employee, 0, DemoEmployeeCount)
	for i := 1; i <= DemoEmployeeCount; i++ {
		s.employees = append(s.employees, &employee.Employee{
			ID:                   int64(i),
			Code:                 fmt.Sprintf("FUNC-%04d", i),
			IdentificationType:   employee.DefaultIdentificationType,
			IdentificationNumber: fmt.Sprintf("170000000%d", i),
			LastName:             fmt.Sprintf("Apellido%d", i),
			FirstName:            fmt.Sprintf("Nombre%d", i),
			Email:                fmt.Sprintf("funcionario%d@empresa.com", i),
			Phone:                ptr(fmt.Sprintf("099999999%d", i)),
			HiredAt:              hired,
			Status:               employee.StatusActive,
			PositionID:           ptr(int64(i%3 + 1)),
			ProjectID:            ptr(int64(i%2 + 1)),
			CityID:               ptr(int64(i%2 + 1)),
			ContractType:         employee.DefaultContractType,
			Schedule:             employee.DefaultSchedule,
			CreatedAt:            now,
			UpdatedAt:            now,
		})
	}

	s.events = nil
	s.vacations = nil
	s.settings = []*setting.Setting{
		{ID: 1, Category: "ASISTENCIA", Key: "HORA_ENTRADA", Value: "08:00", Description: ptr("Hora oficial de entrada"), UpdatedAt: now},
		{ID: 2, Category: "ASISTENCIA", Key: "HORA_SALIDA", Value: "17:00", Description: ptr("Hora oficial de salida"), UpdatedAt: now},
		{ID: 3, Category: "ASISTENCIA", Key: "TOLERANCIA_MINUTOS", Value: "10", Description: ptr("Minutos de tolerancia para la entrada"), UpdatedAt: now},
		{ID: 4, Category: "EMPRESA", Key: "NOMBRE", Value: "Empresa Demo", UpdatedAt: now},
		{ID: 5, Category: "VACACIONES", Key: "DIAS_ANUALES", Value: "15", Description: ptr("Días de vacaciones por año trabajado"), UpdatedAt: now},
	}
}

func ptr[T any](v T) *T {
	return &v
}
