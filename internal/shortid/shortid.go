// Package shortid はレコードの主キーに使う短い一意IDを生成する。
package shortid

import "github.com/google/uuid"

// Length は生成されるIDの文字数。
const Length = 9

// alphabet はURLセーフな64文字。
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_-"

// Generate は新しいIDを生成する。
// UUID v4の乱数部分を6ビットずつalphabetに割り当てる。
func Generate() string {
	u := uuid.New()

	// バージョン/バリアントのビットを避けるため後半8バイトから読む
	var acc uint64
	for _, b := range u[8:16] {
		acc = acc<<8 | uint64(b)
	}
	// 先頭のバリアントビット(2bit)を捨てる
	acc &= (1 << 62) - 1
	// 残りは前半の乱数バイトで補う
	acc ^= uint64(u[0])<<54 | uint64(u[1])<<46

	buf := make([]byte, Length)
	for i := range buf {
		buf[i] = alphabet[acc&63]
		acc >>= 6
	}
	return string(buf)
}
