package parser

import "strings"

// mediaMarkers are placeholders KakaoTalk writes instead of attachment
// content, plus the system notices that share the message layout.
var mediaMarkers = []string{
	"사진",
	"이모티콘",
	"동영상",
	"음성메시지",
	"파일",
	"메시지가 삭제되었습니다",
	"님이 들어왔습니다",
	"님이 나갔습니다",
	"방장 권한이",
	"대화방 이름을",
}

// IsMediaLike reports whether text is an attachment placeholder or a
// system notice rather than something a person typed.
func IsMediaLike(text string) bool {
	for _, marker := range mediaMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
