package projection

import "time"

// Config : 投影流程的設定
type Config struct {
	SuperUser       string            // 超級使用者的名稱，空字串時無效
	RefreshDuration time.Duration     // 已計算選單的刷新時間
	FetchTimeout    time.Duration     // 單次重算的整體逾時，0為不限制
	Icons           map[string]string // 選單名稱 -> 圖示名稱
}

const defaultRefreshDuration = time.Minute

// withDefaults : 補上未設定的預設值
func (c Config) withDefaults() Config {
	if c.RefreshDuration <= 0 {
		c.RefreshDuration = defaultRefreshDuration
	}
	return c
}
