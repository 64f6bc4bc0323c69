package models

// Employee represents an employee record managed by administrators.
// JSON names follow the wire format used by the directory UI.
type Employee struct {
	ID          string   `json:"id"`
	BusinessID  string   `json:"f_Id"`
	Name        string   `json:"f_Name"`
	Email       string   `json:"f_Email"`
	Mobile      string   `json:"f_Mobile"`
	Designation string   `json:"f_Designation"`
	Gender      string   `json:"f_gender"`
	Courses     []string `json:"f_Course"`
	Skills      string   `json:"f_skills"`
}
