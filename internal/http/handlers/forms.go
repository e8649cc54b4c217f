package handlers

import (
	"errors"
	"regexp"
	"strings"

	"fleetlog/internal/domain"
	"fleetlog/internal/domain/models"
	"fleetlog/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var plateRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 .\-]{0,19}$`)

// RegisterValidators adds the custom form tags to gin's validator.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("plate", func(fl validator.FieldLevel) bool {
		return plateRe.MatchString(strings.TrimSpace(fl.Field().String()))
	})
}

// bindForm binds the posted form and turns validator failures into a
// ValidationError naming the first bad field.
func bindForm(c *gin.Context, dst any) error {
	if err := c.ShouldBind(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return domain.ValidationError{Field: strings.ToLower(fe.Field()), Msg: validationMessage(fe), Err: err}
		}
		return domain.ValidationError{Field: "form", Msg: "invalid form submission", Err: err}
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "is too long"
	case "plate":
		return "is not a valid licence plate"
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "is invalid"
	}
}

type employeeForm struct {
	Name       string `form:"name" binding:"required,max=120"`
	Phone      string `form:"phone" binding:"max=40"`
	Position   string `form:"position" binding:"max=80"`
	LicenseNo  string `form:"license_no" binding:"max=40"`
	BaseSalary string `form:"base_salary"`
}

func (f employeeForm) model() models.Employee {
	return models.Employee{
		Name:       utils.NormalizeSpace(f.Name),
		Phone:      strings.TrimSpace(f.Phone),
		Position:   utils.NormalizeSpace(f.Position),
		LicenseNo:  strings.TrimSpace(f.LicenseNo),
		BaseSalary: utils.AmountOrZero(f.BaseSalary),
	}
}

type vehicleForm struct {
	LicensePlate    string `form:"license_plate" binding:"required,plate"`
	VehicleType     string `form:"vehicle_type" binding:"max=60"`
	Capacity        string `form:"capacity"`
	FuelConsumption string `form:"fuel_consumption"`
}

func (f vehicleForm) model() models.Vehicle {
	return models.Vehicle{
		LicensePlate:    f.LicensePlate,
		VehicleType:     utils.NormalizeSpace(f.VehicleType),
		Capacity:        utils.AmountOrZero(f.Capacity),
		FuelConsumption: utils.AmountOrZero(f.FuelConsumption),
	}
}

type routeForm struct {
	Code          string `form:"route_code" binding:"required,max=40"`
	Name          string `form:"route_name" binding:"required,max=120"`
	Distance      string `form:"distance"`
	MonthlySalary string `form:"monthly_salary"`
	Category      string `form:"category" binding:"omitempty,oneof=standard reinforcement extra"`
}

func (f routeForm) model() models.Route {
	return models.Route{
		Code:          f.Code,
		Name:          utils.NormalizeSpace(f.Name),
		Distance:      utils.AmountOrZero(f.Distance),
		MonthlySalary: utils.AmountOrZero(f.MonthlySalary),
		Category:      domain.ParseRouteCategory(f.Category),
	}
}

type tripForm struct {
	RouteID      string `form:"route_id" binding:"required"`
	Date         string `form:"date"`
	DistanceKm   string `form:"distance_km"`
	CargoWeight  string `form:"cargo_weight"`
	DriverName   string `form:"driver_name" binding:"max=120"`
	LicensePlate string `form:"license_plate" binding:"max=20"`
	Notes        string `form:"notes" binding:"max=500"`
}

func (f tripForm) model() (models.Trip, error) {
	t := models.Trip{
		RouteID:      utils.ParseID(f.RouteID),
		Date:         utils.DateOrToday(f.Date),
		DistanceKm:   utils.AmountOrZero(f.DistanceKm),
		CargoWeight:  utils.AmountOrZero(f.CargoWeight),
		DriverName:   utils.NormalizeSpace(f.DriverName),
		LicensePlate: utils.NormalizePlate(f.LicensePlate),
		Notes:        strings.TrimSpace(f.Notes),
	}
	if t.RouteID == 0 {
		return t, domain.ValidationError{Field: "route_id", Msg: "choose a route"}
	}
	return t, nil
}

type fuelForm struct {
	Date          string `form:"date"`
	LicensePlate  string `form:"license_plate" binding:"required,plate"`
	FuelType      string `form:"fuel_type" binding:"max=40"`
	PricePerLiter string `form:"price_per_liter"`
	LitersPumped  string `form:"liters_pumped"`
	Odometer      string `form:"odometer"`
	Notes         string `form:"notes" binding:"max=500"`
}

func (f fuelForm) model() models.FuelRecord {
	return models.FuelRecord{
		Date:          utils.DateOrToday(f.Date),
		LicensePlate:  f.LicensePlate,
		FuelType:      f.FuelType,
		PricePerLiter: utils.AmountOrZero(f.PricePerLiter),
		LitersPumped:  utils.AmountOrZero(f.LitersPumped),
		Odometer:      utils.AmountOrZero(f.Odometer),
		Notes:         f.Notes,
	}
}

type financeForm struct {
	Date            string `form:"date"`
	Kind            string `form:"kind" binding:"omitempty,oneof=income expense"`
	Category        string `form:"category" binding:"max=60"`
	Description     string `form:"description" binding:"max=255"`
	Amount          string `form:"amount"`
	VATPercent      string `form:"vat_percent"`
	DiscountPercent string `form:"discount_percent"`
	Notes           string `form:"notes" binding:"max=500"`
}

func (f financeForm) model() models.FinanceTransaction {
	return models.FinanceTransaction{
		Date:            utils.DateOrToday(f.Date),
		Kind:            domain.ParseTxKind(f.Kind),
		Category:        f.Category,
		Description:     f.Description,
		Amount:          utils.AmountOrZero(f.Amount),
		VATPercent:      utils.AmountOrZero(f.VATPercent),
		DiscountPercent: utils.AmountOrZero(f.DiscountPercent),
		Notes:           f.Notes,
	}
}

type loginForm struct {
	Username string `form:"username" binding:"required,max=60"`
	Password string `form:"password" binding:"required,max=200"`
}
