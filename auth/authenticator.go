// Copyright (c) 2024 The Imaging Plaza Project and its Contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package auth

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"

	"github.com/fernet/fernet-go"

	"github.com/imaging-plaza/fairifier/config"
)

// This type accepts a valid access token in exchange for a user record. It is
// used to gate record submission. It's a short-term solution, as the encrypted
// file is maintained manually, but it provides a method for adding users
// without Acts of God.
type Authenticator struct {
	UserForToken map[string]User
}

// ReadAccessTokenFile reads and decrypts the access file at the given path.
// The file is a fernet token wrapping a tab-delimited table with records like
// so:
//
//	Name\tEmail\tOrcid\tOrganization\tToken
func ReadAccessTokenFile(tokenFilePath string) (map[string]User, error) {
	key, err := fernet.DecodeKey(config.Auth.Key)
	if err != nil {
		return nil, err
	}

	encryptedText, err := os.ReadFile(tokenFilePath)
	if err != nil {
		return nil, err
	}

	// a zero TTL means tokens don't expire; the file is rotated manually
	plainText := fernet.VerifyAndDecrypt(encryptedText, 0, []*fernet.Key{key})
	if plainText == nil {
		return nil, errors.New("The access file could not be decrypted.")
	}

	reader := csv.NewReader(bytes.NewReader(plainText))
	reader.Comma = '\t'
	reader.Comment = '#'
	reader.FieldsPerRecord = 5

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	userRecords := make(map[string]User)
	for _, record := range records {
		token := record[4]
		userRecords[token] = User{
			Name:         record[0],
			Email:        record[1],
			Orcid:        record[2],
			Organization: record[3],
		}
	}

	return userRecords, nil
}

func NewAuthenticator() (*Authenticator, error) {
	var a Authenticator
	var err error
	filePath := filepath.Join(config.Service.DataDirectory, "access.dat")
	a.UserForToken, err = ReadAccessTokenFile(filePath)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// given an access token, returns a User or an error
func (a *Authenticator) GetUser(accessToken string) (User, error) {
	if user, found := a.UserForToken[accessToken]; found {
		return user, nil
	} else {
		return User{}, errors.New("Invalid access token!")
	}
}
