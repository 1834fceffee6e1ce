package conversation

import "testing"

func TestExtractFoodKeyword(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"direct keyword", "拉麵", "拉麵"},
		{"common prefix", "我想吃拉麵", "拉麵"},
		{"short prefix", "想吃牛肉麵", "牛肉麵"},
		{"longest prefix wins", "我想要火鍋", "火鍋"},
		{"prefix mid sentence", "今天我想吃壽司", "壽司"},
		{"prefix only falls through", "我想吃", "我想吃"},
		{"surrounding spaces", "  我要點 披薩  ", "披薩"},
		{"blank", "   ", ""},
		{"like prefix", "我喜歡日式料理", "日式料理"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractFoodKeyword(tc.text); got != tc.want {
				t.Errorf("ExtractFoodKeyword(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestWantsRecommendation(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"推薦一下附近的餐廳", true},
		{"有什麼建議嗎", true},
		{"你覺得吃什麼好", true},
		{"我想吃拉麵", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := WantsRecommendation(tc.text); got != tc.want {
			t.Errorf("WantsRecommendation(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
