package models

// Employee mirrors the employee-directory record. The directory is the system
// of record; this service only reads employees to validate task assignments.
type Employee struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CPF        string `json:"cpf"`
	Department string `json:"department"`
	Enabled    bool   `json:"enabled"`
}
