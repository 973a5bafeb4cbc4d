package enrich

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/neilberkman/chatvibe/internal/models"
)

const instructions = `다음 카카오톡 대화를 분석하여 각 화자의 특징과 대화방 분위기를 파악해주세요.

규칙:
- 화자 목록의 모든 화자를 정확히 한 번씩 포함하세요.
- 각 화자마다 고유한 별명을 부여하세요 (중복 금지). 별명에는 화자 이름을 붙이지 마세요.
- 00왕, 00러, 00가 등 다양한 형태를 사용하되 화자의 실제 대화 패턴을 반영하세요.
- traits는 최대 4개의 짧은 특징입니다.
- featureSummary는 한 줄 요약, analysis는 1-2문장 분석입니다.
- roomSummary는 대화방 전체 분위기를 2-3문장으로 설명합니다.
- 휴리스틱 결과와 지표는 참고용입니다. 사용자 민감도 설정(0-100)이 높을수록 해당 성향을 더 강하게 반영하세요.

JSON으로만 응답하세요.`

type speakerContext struct {
	Speaker  string                 `json:"speaker"`
	Nickname string                 `json:"heuristicNickname"`
	Traits   []string               `json:"heuristicTraits"`
	Features models.SpeakerFeatures `json:"features"`
}

func buildInput(req Request, sample []SampleLine) (string, error) {
	var b strings.Builder

	b.WriteString("대화 내용:\n")
	for _, line := range sample {
		fmt.Fprintf(&b, "%s: %s\n", line.Speaker, line.Text)
	}

	fmt.Fprintf(&b, "\n화자 목록: %s\n", strings.Join(req.Speakers, ", "))

	settings, err := json.Marshal(req.Settings)
	if err != nil {
		return "", fmt.Errorf("failed to encode settings: %w", err)
	}
	fmt.Fprintf(&b, "\n민감도 설정: %s\n", settings)

	ctx := make([]speakerContext, 0, len(req.Heuristic.Speakers))
	for _, s := range req.Heuristic.Speakers {
		ctx = append(ctx, speakerContext{
			Speaker:  s.Speaker,
			Nickname: s.Nickname,
			Traits:   s.Traits,
			Features: s.Features,
		})
	}
	heuristic, err := json.Marshal(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to encode heuristic summary: %w", err)
	}
	fmt.Fprintf(&b, "\n휴리스틱 분석: %s\n", heuristic)

	return b.String(), nil
}
