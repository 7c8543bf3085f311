package gormstore

import "time"

type employeeRow struct {
	EmployeeID string    `gorm:"column:employee_id;size:64;primaryKey"`
	FullName   string    `gorm:"column:full_name;size:255;not null"`
	Email      string    `gorm:"column:email;size:255;not null;uniqueIndex:uq_employees_email"`
	Department string    `gorm:"column:department;size:255;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;index:idx_employees_created_at"`

	Attendance []attendanceRow `gorm:"foreignKey:EmployeeID;references:EmployeeID;constraint:OnDelete:CASCADE"`
}

func (employeeRow) TableName() string { return "employees" }

type attendanceRow struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID string    `gorm:"column:employee_id;size:64;not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	Date       string    `gorm:"column:date;type:char(10);not null;uniqueIndex:uq_attendance_employee_date,priority:2;index:idx_attendance_date"`
	Status     string    `gorm:"column:status;size:16;not null;check:chk_attendance_status,status IN ('Present','Absent')"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (attendanceRow) TableName() string { return "attendance" }

// entryRow receives the attendance/employee join.
type entryRow struct {
	ID         int64
	EmployeeID string
	Date       string
	Status     string
	CreatedAt  time.Time
	FullName   string
	Email      string
	Department string
}

type statusCountRow struct {
	Status string
	Count  int
}
