package board

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"
)

const hashNameLen = 12

// HashName 生成"同一用户同一天在同一话题"恒定的匿名标识
// 只取日历日(UTC)，不含时分秒；盐由部署方注入，外部无法反推 userID
func HashName(userID, topicID uint64, date time.Time, salt string) string {
	day := date.UTC()
	raw := fmt.Sprintf("%d,%04d-%02d-%02d,%d,%s",
		userID, day.Year(), int(day.Month()), day.Day(), topicID, salt)
	sum := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(sum[:])[:hashNameLen]
}
