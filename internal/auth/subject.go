package auth

import "strconv"

func subjectID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseSubject(subject string) (uint, error) {
	id, err := strconv.ParseUint(subject, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
