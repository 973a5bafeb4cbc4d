package rendering

import "testing"

func TestStripMarkdown(t *testing.T) {
	md := "# 대화 분위기 분석\n\n**메시지:** 12개\n\n---\n\n## 화자별 분석\n\n" +
		"_분석 방식: AI_\n\n> 이거 뭐야?\n\n| 순위 | 단어 |\n|---:|---|\n| 1 | a\\|b |\n"

	want := "대화 분위기 분석\n\n메시지: 12개\n\n화자별 분석\n\n" +
		"분석 방식: AI\n\n  이거 뭐야?\n\n| 순위 | 단어 |\n| 1 | a|b |\n"

	if got := StripMarkdown(md); got != want {
		t.Errorf("StripMarkdown() =\n%q\nwant\n%q", got, want)
	}
}
