package validator

import (
	"testing"
)

func TestValidateTeacherRegisterRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     TeacherRegisterRequest
		wantErr bool
	}{
		{
			name: "valid",
			req: TeacherRegisterRequest{
				Username:   "t1",
				Password:   "secret12",
				Name:       "Prof. Rao",
				Department: "BCA",
				Code:       "admin123",
			},
		},
		{
			name: "blank username",
			req: TeacherRegisterRequest{
				Password:   "secret12",
				Name:       "Prof. Rao",
				Department: "BCA",
				Code:       "admin123",
			},
			wantErr: true,
		},
		{
			name: "blank department",
			req: TeacherRegisterRequest{
				Username: "t1",
				Password: "secret12",
				Name:     "Prof. Rao",
				Code:     "admin123",
			},
			wantErr: true,
		},
		{
			name: "missing code",
			req: TeacherRegisterRequest{
				Username:   "t1",
				Password:   "secret12",
				Name:       "Prof. Rao",
				Department: "BCA",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(&tt.req)
			if (errs != nil) != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateSaveAttendanceRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     SaveAttendanceRequest
		wantErr bool
	}{
		{name: "valid", req: SaveAttendanceRequest{Date: "2024-01-10", PresentIDs: []uint{1, 2}}},
		{name: "empty present set is fine", req: SaveAttendanceRequest{Date: "2024-01-10"}},
		{name: "missing date", req: SaveAttendanceRequest{PresentIDs: []uint{1}}, wantErr: true},
		{name: "malformed date", req: SaveAttendanceRequest{Date: "10/01/2024"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(&tt.req)
			if (errs != nil) != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateStudentCreateRequest(t *testing.T) {
	v := New()

	if errs := v.Validate(&StudentCreateRequest{RollNo: "101", Name: "Alice"}); errs != nil {
		t.Errorf("minimal valid request rejected: %v", errs)
	}
	if errs := v.Validate(&StudentCreateRequest{Name: "Alice"}); errs == nil {
		t.Error("blank roll_no should fail validation")
	}
	if errs := v.Validate(&StudentCreateRequest{RollNo: "101", Name: "Alice", Email: "not-an-email"}); errs == nil {
		t.Error("malformed email should fail validation")
	}
}
