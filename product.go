package tally

// Product is the immutable-identity configuration of one product line.
//
// The id is assigned by the registry at creation and is never reused or
// mutated. Color and Icon are display attributes with no financial meaning.
type Product struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	UnitCost          Money  `json:"unitCost"`
	SellingPrice      Money  `json:"sellingPrice"`
	InitialUnits      int64  `json:"initialUnits"`
	InitialInvestment Money  `json:"initialInvestment"`
	Color             string `json:"color,omitempty"`
	Icon              string `json:"icon,omitempty"`
}

// NewProduct creates a product configuration with an explicit initial unit
// count. The id is left empty; the registry assigns it at creation.
func NewProduct(name, description string, unitCost, sellingPrice Money, initialUnits int64, initialInvestment Money) *Product {
	return &Product{
		Name:              name,
		Description:       description,
		UnitCost:          unitCost,
		SellingPrice:      sellingPrice,
		InitialUnits:      initialUnits,
		InitialInvestment: initialInvestment,
	}
}

// NewProductFromInvestment is the simplified creation flow: the initial unit
// count is derived from the initial investment divided by the unit cost,
// truncated to whole units.
func NewProductFromInvestment(name, description string, unitCost, sellingPrice, initialInvestment Money) *Product {
	var units int64
	if unitCost.IsPositive() {
		units = initialInvestment.Div(unitCost).IntPart()
	}
	return NewProduct(name, description, unitCost, sellingPrice, units, initialInvestment)
}

// Clone returns a copy of the product configuration.
func (p *Product) Clone() *Product {
	q := *p
	return &q
}

// Validate checks every configuration constraint and reports all violations
// at once, or nil when the configuration is valid.
func (p *Product) Validate() error {
	var violations []FieldViolation
	if p.Name == "" {
		violations = append(violations, FieldViolation{"name", "must not be empty"})
	}
	if p.Description == "" {
		violations = append(violations, FieldViolation{"description", "must not be empty"})
	}
	if !p.UnitCost.IsPositive() {
		violations = append(violations, FieldViolation{"unitCost", "must be positive"})
	}
	if !p.SellingPrice.GreaterThan(p.UnitCost) {
		violations = append(violations, FieldViolation{"sellingPrice", "must exceed the unit cost"})
	}
	if p.InitialUnits <= 0 {
		violations = append(violations, FieldViolation{"initialUnits", "must be positive"})
	}
	if p.InitialInvestment.IsNegative() {
		violations = append(violations, FieldViolation{"initialInvestment", "must not be negative"})
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Product.
func (p *Product) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("name", p.Name)
	w.Append("description", p.Description)
	w.Append("unitCost", p.UnitCost)
	w.Append("sellingPrice", p.SellingPrice)
	w.Append("initialUnits", p.InitialUnits)
	w.Append("initialInvestment", p.InitialInvestment)
	w.Optional("color", p.Color)
	w.Optional("icon", p.Icon)
	return w.MarshalJSON()
}
