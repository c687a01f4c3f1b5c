// model/location.go
package model

type Location struct {
	LocationID int64           `json:"locationId"`
	Address    string          `json:"address"`
	City       string          `json:"city"`
	Employees  []Employee      `json:"employees"`
	Inventory  []InventoryItem `json:"inventory"`
}

// Employee belongs to one location. Employees are never deleted, only
// deactivated.
type Employee struct {
	EmployeeID  int64   `json:"employeeId"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Email       string  `json:"email"`
	IsActive    bool    `json:"isActive"`
}

// InventoryItem is a physical copy at one location. MovieID and FormatID
// are weak references into the catalog and format lookup.
type InventoryItem struct {
	InventoryItemID int64      `json:"inventoryItemId"`
	MovieID         int64      `json:"movieId"`
	FormatID        int64      `json:"formatId"`
	Status          ItemStatus `json:"status"`
}

// EmployeeByID returns the embedded employee, or nil.
func (l *Location) EmployeeByID(id int64) *Employee {
	for i := range l.Employees {
		if l.Employees[i].EmployeeID == id {
			return &l.Employees[i]
		}
	}
	return nil
}

// ItemByID returns the embedded inventory item, or nil.
func (l *Location) ItemByID(id int64) *InventoryItem {
	for i := range l.Inventory {
		if l.Inventory[i].InventoryItemID == id {
			return &l.Inventory[i]
		}
	}
	return nil
}
