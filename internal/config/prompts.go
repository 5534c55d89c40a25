package config

// DefaultPrompts are the Mandarin prompts the fine-tuned intent model was trained on.
func DefaultPrompts() PromptConfig {
	return PromptConfig{
		ItemIntent: `你是一個語意分類助手，請判斷這句話是否是在「記錄物品的位置」。
句子：「%s」
請只回答：
A（如果是在記錄物品放置）
B（如果是聊天、敘述、非記錄）
請只回答 A 或 B，不要加任何說明。`,

		ScheduleIntent: `你是一個語意分類助手，請判斷這句話是否是在「安排時程」。
句子：「%s」
請只回答：
A（如果是在安排時程）
B（如果是聊天、記錄物品、其他非時程安排的語句）
請只回答 A 或 B，不要加任何說明。`,

		ItemExtraction: `請從下面這句話中擷取出下列資訊，並用 JSON 格式回覆：
- item：物品名稱
- location：放置位置
- owner：物品是誰的（如果句中沒有明確提到擁有者，請填「我」代表使用者本人）
句子：「%s」
請回傳以下格式（勿加註解、標籤或 Markdown）：
{"item": "...", "location": "...", "owner": "..."}`,

		ScheduleExtraction: `請從這句話擷取下列資訊，用 JSON 回覆：
- task：做什麼
- location：地點描述
- place：地點分類（如客廳、學校）
- time：時間
- person：誰（若未提及填「我」）
句子：「%s」
格式：
{"task": "...", "location": "...", "place": "...", "time": "...", "person": "..."}`,

		PlaceCategory: `請從下面這段描述中判斷對應的「地點分類」，例如：客廳、書房、廚房、臥室、浴室、門口、陽台、冰箱、衣櫃等。
如果無法判斷，請回答：未知。
描述：「%s」
請只回答地點名稱，勿加說明。`,
	}
}
