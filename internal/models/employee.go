package models

// Employee is one HR record. Salary and deduction percentages are
// optional until the administrator fills in the payroll sheet.
type Employee struct {
	ID                 EntityID `json:"id"`
	Name               string   `json:"name"`
	RUT                string   `json:"rut"`
	EntryDate          string   `json:"entryDate"`
	Role               string   `json:"role"`
	GrossSalary        int      `json:"grossSalary,omitempty"`
	AFPPercentage      float64  `json:"afpPercentage,omitempty"`
	FonasaPercentage   float64  `json:"fonasaPercentage,omitempty"`
	CesantiaPercentage float64  `json:"cesantiaPercentage,omitempty"`
}

// Payroll holds the deduction breakdown computed from an employee's
// gross salary and percentage rates. Amounts are rounded to whole pesos.
type Payroll struct {
	GrossSalary    int `json:"grossSalary"`
	AFP            int `json:"afp"`
	Fonasa         int `json:"fonasa"`
	Cesantia       int `json:"cesantia"`
	TotalDiscounts int `json:"totalDiscounts"`
	Net            int `json:"net"`
}

// VacationStats reports legal vacation accrual for an employee:
// 1.25 days earned per full month of tenure, minus approved days taken.
type VacationStats struct {
	Earned    float64 `json:"earned"`
	Taken     int     `json:"taken"`
	Available float64 `json:"available"`
}
